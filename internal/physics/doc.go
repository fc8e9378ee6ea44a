// Package physics compiles an assembled scene into the scenario dynamics:
// a damped vertical slider carrying a two-finger gripper above a graspable
// box on a static table.
//
// The model is deliberately not a general rigid-body engine. Compile
// understands exactly this topology and rejects anything else. Contacts
// use penalty springs with Coulomb-capped, velocity-regularized friction;
// actuators are position servos; joints named in the scene's
// gravity-compensation list receive a bias-cancelling force each step.
package physics
