// Package snapshot serializes the read model into a versioned artifact and
// restores it at process start.
//
// The live store keeps keyed maps. Conversion to ordered lists happens only
// here, at the serialization boundary, so the artifact bytes are stable for a
// given read model.
package snapshot
