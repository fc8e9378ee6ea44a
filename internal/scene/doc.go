// Package scene procedurally assembles the gripper interaction world.
//
// A [World] is a tree of named bodies carrying geoms and slide joints,
// plus a flat actuator table. Assembly mirrors the usual model-description
// workflow: build sub-assemblies ([NewTableArena], [NewParallelGripper],
// [NewBoxObject]), merge them, re-parent where needed, and hand the result
// to physics.Compile. The world is only mutated during assembly.
package scene
