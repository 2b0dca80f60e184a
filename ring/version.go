package ring

// Version identifies the wire-compatible revision of the Ring layout.
// Two processes attaching to the same shared-memory region should agree
// on this out of band; the ring itself does not store or check it.
const (
	VersionMajor = 1
	VersionMinor = 0
	VersionPatch = 0
)
