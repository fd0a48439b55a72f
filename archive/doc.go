// Package archive is the on-disk container for one encoded sequence.
//
// An Archive is a msgpack map carrying a schema version, a random ID, the
// record name, the coder that produced the two payloads (stream text and
// table text), the raw payload sizes, and a CRC-32 of the original sequence.
// Read rejects archives written by another schema version; Verify compares
// a decoded sequence against the stored checksum.
package archive
