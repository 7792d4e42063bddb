// Package network holds the simulated point cloud behind the ambient
// background: nodes drifting inside a box and the sparse set of
// connections drawn between them.
//
//   - [Node]: position and velocity, reflected at the box walls
//   - [Connection]: stable indices of its two endpoint nodes
//   - [Network]: owns both collections and advances them one frame at a time
//
// # Example
//
//	rng := rand.New(rand.NewSource(seed))
//	net, _ := network.Generate(network.DefaultParams(), rng)
//	for i := 0; i < frames; i++ {
//		net.Step()
//	}
//	segs := net.Segments(nil)
//
// # Thread Safety
//
// A Network is NOT safe for concurrent use. The visualizer serializes all
// access through its frame callback.
package network
