// Package gui renders the node network in a native raylib window.
//
// Nodes are drawn as unlit spheres and connections as translucent lines.
// The mouse pans the camera; resizing the window only changes the
// projection.
package gui
