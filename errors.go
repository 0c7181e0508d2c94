package retrieval

import "errors"

// Error kinds for snapshot persistence and LSH parameters.
//
// Defined as package-level sentinels so callers can compare with
// errors.Is, the same convention the teacher used for ErrNoPostingList
// and ErrKeyNotFound. No function in this module returns them: Encode
// and Decode in serialization.go do not wrap their errors in these.
//
// There is no EmptyCorpus error: an index with no documents indexed
// is simply empty.
var (
	// ErrIoFailure wraps a snapshot read/write failure.
	ErrIoFailure = errors.New("retrieval: io failure")

	// ErrSnapshotCorrupt means a binary snapshot could not be decoded.
	ErrSnapshotCorrupt = errors.New("retrieval: snapshot corrupt")

	// ErrSnapshotVersionMismatch means a snapshot was written by an
	// incompatible format version.
	ErrSnapshotVersionMismatch = errors.New("retrieval: snapshot version mismatch")

	// ErrParameterMismatch means the LSH parameters are inconsistent,
	// e.g. signature_length is not evenly divisible by band_count.
	ErrParameterMismatch = errors.New("retrieval: parameter mismatch")
)
