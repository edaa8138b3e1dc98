// Package platform provides cross-platform filesystem operations used while
// materializing a project: clearing read-only markers, removing a directory
// tree bottom-up, and writing files atomically where the OS allows it.
package platform
