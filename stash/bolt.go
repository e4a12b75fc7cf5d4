package stash

import (
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/lnp-bp/rgbcore/seal"
	"github.com/lnp-bp/rgbcore/witness"
)

const (
	dbFileName       = "stash.db"
	dbFilePermission = 0600
	schemaVersion    = 1
)

var (
	schemataBucket    = []byte("schemata")
	genesesBucket     = []byte("geneses")
	bundlesBucket     = []byte("bundles")
	witnessesBucket   = []byte("witnesses")
	secretSealsBucket = []byte("secret-seals")
	libsBucket        = []byte("libs")
	typesBucket       = []byte("types")
	metaBucket        = []byte("meta")
	versionKey        = []byte("version")
)

// Bolt is the bbolt-backed persistent stash, grounded on
// channeldb/db.go's Open/createChannelDB/syncVersions pattern: one
// bucket per collection, keyed by each value's content-derived id, with
// a single schema-version entry in a dedicated meta bucket standing in
// for channeldb's migration machinery (this stash's on-disk layout has
// had no migrations yet, so the only version is schemaVersion). Its
// byte-level methods do not satisfy persistence.StashProvider.
//
// Every value is stored as its caller-supplied encoded bytes: this
// package does not itself strict-encode Schema/Genesis/TransitionBundle
// (the schema/VM and consignment layers are out of scope per SPEC_FULL
// §1), so callers pass already-encoded payloads through the codec
// functions in seal/ids.go and witness's own encoders.
type Bolt struct {
	db     *bbolt.DB
	dbPath string
}

// OpenBolt opens (creating if necessary) the bbolt-backed stash rooted
// at dbPath, the same two-step fileExists/createChannelDB-then-Open
// shape as channeldb.Open.
func OpenBolt(dbPath string) (*Bolt, error) {
	if !fileExists(dbPath) {
		if err := os.MkdirAll(dbPath, 0700); err != nil {
			return nil, err
		}
	}
	path := filepath.Join(dbPath, dbFileName)
	db, err := bbolt.Open(path, dbFilePermission, nil)
	if err != nil {
		return nil, err
	}
	b := &Bolt{db: db, dbPath: dbPath}
	if err := b.createBuckets(); err != nil {
		db.Close()
		return nil, err
	}
	if err := b.syncVersion(); err != nil {
		db.Close()
		return nil, err
	}
	return b, nil
}

func (b *Bolt) createBuckets() error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{
			schemataBucket, genesesBucket, bundlesBucket,
			witnessesBucket, secretSealsBucket, libsBucket, typesBucket, metaBucket,
		} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *Bolt) syncVersion() error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		meta := tx.Bucket(metaBucket)
		existing := meta.Get(versionKey)
		if existing == nil {
			return meta.Put(versionKey, encodeUint32(schemaVersion))
		}
		if decodeUint32(existing) > schemaVersion {
			return fmt.Errorf("stash: database schema version %d is newer than this binary's %d", decodeUint32(existing), schemaVersion)
		}
		return nil
	})
}

func fileExists(path string) bool {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false
		}
	}
	return true
}

func encodeUint32(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

func decodeUint32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// Close closes the underlying bbolt database.
func (b *Bolt) Close() error { return b.db.Close() }

// Begin/Commit/Rollback satisfy persistence.StoreTransaction. bbolt's
// own Update/View already brackets each individual call in a
// transaction, so these are no-ops — a real multi-call transaction
// would need a lower-level bbolt.Tx handle, which this engine's single-
// writer model never requires.
func (b *Bolt) Begin() error    { return nil }
func (b *Bolt) Commit() error   { return nil }
func (b *Bolt) Rollback() error { return nil }

// Lib returns the AluVM library payload stored under id, if any.
func (b *Bolt) Lib(id seal.LibId) ([]byte, bool) {
	var out []byte
	_ = b.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(libsBucket).Get(id[:]); v != nil {
			out = append([]byte(nil), v...)
		}
		return nil
	})
	return out, out != nil
}

// ReplaceLib inserts or overwrites the library payload stored under id;
// returns true iff no library was previously stored there.
func (b *Bolt) ReplaceLib(id seal.LibId, lib []byte) (bool, error) {
	var isNew bool
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(libsBucket)
		isNew = bucket.Get(id[:]) == nil
		return bucket.Put(id[:], lib)
	})
	return isNew, err
}

// SecretSeal reports whether concealed has ever been registered.
func (b *Bolt) SecretSeal(concealed seal.SecretSeal) bool {
	var ok bool
	_ = b.db.View(func(tx *bbolt.Tx) error {
		ok = tx.Bucket(secretSealsBucket).Get(concealed[:]) != nil
		return nil
	})
	return ok
}

// SealSecretBytes returns the already-encoded GraphSeal bytes stored
// under concealed, the persistent counterpart to Mem.SealSecret; the
// caller is responsible for decoding them (see ReplaceWitness's
// comment on Bolt's opaque-bytes convention).
func (b *Bolt) SealSecretBytes(concealed seal.SecretSeal) ([]byte, bool) {
	var out []byte
	_ = b.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(secretSealsBucket).Get(concealed[:]); v != nil {
			out = append([]byte(nil), v...)
		}
		return nil
	})
	return out, out != nil
}

// AddSecretSealBytes registers a revealed GraphSeal's already-encoded
// bytes under its concealment; returns true iff that concealment was
// not already registered. The caller computes concealed via
// GraphSeal.Conceal before encoding, mirroring Mem.AddSecretSeal.
func (b *Bolt) AddSecretSealBytes(concealed seal.SecretSeal, encoded []byte) (bool, error) {
	var isNew bool
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(secretSealsBucket)
		isNew = bucket.Get(concealed[:]) == nil
		return bucket.Put(concealed[:], encoded)
	})
	return isNew, err
}

// encodeWitnessKey returns the witnesses-bucket key for txid: its raw 32
// bytes. Bolt has no SealWitness codec of its own; SPEC_FULL §7's
// MPC/DBC stand-ins carry no strict-encoding, so callers store
// already-encoded witness bytes (ReplaceWitness) and supply the decoder
// when reading them back (Witness).
//
// A bbolt-backed stash exists to prove the teacher's embedded-storage
// idiom carries over to this domain (SPEC_FULL §7); a full strict-
// encoding codec for every stash value belongs to the out-of-scope
// schema/VM layer, so encoding stays with the caller rather than
// re-implementing strict_encoding in Go.
func encodeWitnessKey(txid seal.Txid) []byte { return append([]byte(nil), txid[:]...) }

// Witness returns the seal witness stored under txid, decoded via dec,
// the caller-supplied decoder for the bytes stored by ReplaceWitness.
func (b *Bolt) Witness(txid seal.Txid, dec func([]byte) (witness.SealWitness, error)) (*witness.SealWitness, error) {
	var raw []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(witnessesBucket).Get(encodeWitnessKey(txid)); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil || raw == nil {
		return nil, err
	}
	w, err := dec(raw)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// ReplaceWitness stores w's already-encoded bytes under its witness id.
// Unlike Mem's ReplaceWitness, merge-reveal against any existing value
// is the caller's responsibility here (it must decode, merge, and pass
// the re-encoded result) since Bolt holds opaque bytes, not structured
// SealWitness values.
func (b *Bolt) ReplaceWitness(id seal.Txid, encoded []byte) (bool, error) {
	var isNew bool
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(witnessesBucket)
		isNew = bucket.Get(encodeWitnessKey(id)) == nil
		return bucket.Put(encodeWitnessKey(id), encoded)
	})
	return isNew, err
}

// ReplaceGenesisBytes stores genesis's already-encoded bytes under its
// contract id; returns true iff no genesis was previously stored there.
func (b *Bolt) ReplaceGenesisBytes(contractID seal.ContractId, encoded []byte) (bool, error) {
	var isNew bool
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(genesesBucket)
		isNew = bucket.Get(contractID[:]) == nil
		return bucket.Put(contractID[:], encoded)
	})
	return isNew, err
}

// ReplaceBundleBytes stores a bundle's already-encoded bytes under its
// bundle id.
func (b *Bolt) ReplaceBundleBytes(bundleID seal.BundleId, encoded []byte) (bool, error) {
	var isNew bool
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bundlesBucket)
		isNew = bucket.Get(bundleID[:]) == nil
		return bucket.Put(bundleID[:], encoded)
	})
	return isNew, err
}

// ReplaceSchemaBytes stores a schema's already-encoded bytes under its
// schema id.
func (b *Bolt) ReplaceSchemaBytes(schemaID seal.SchemaId, encoded []byte) (bool, error) {
	var isNew bool
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(schemataBucket)
		isNew = bucket.Get(schemaID[:]) == nil
		return bucket.Put(schemaID[:], encoded)
	})
	return isNew, err
}

// ConsumeTypesBytes additively merges the already-encoded type
// definitions in entries into the types bucket, keyed by library id; a
// library id already present is left untouched, matching
// TypeSystem.Extend's additive-merge semantics.
func (b *Bolt) ConsumeTypesBytes(entries map[string][]byte) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(typesBucket)
		for id, def := range entries {
			if bucket.Get([]byte(id)) != nil {
				continue
			}
			if err := bucket.Put([]byte(id), def); err != nil {
				return err
			}
		}
		return nil
	})
}

// TypeSystemBytes returns every library id's already-encoded type
// definitions currently stored.
func (b *Bolt) TypeSystemBytes() map[string][]byte {
	out := make(map[string][]byte)
	_ = b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(typesBucket).ForEach(func(k, v []byte) error {
			out[string(k)] = append([]byte(nil), v...)
			return nil
		})
	})
	return out
}
