package reward

import (
	"fmt"

	"hestia/core/state"
)

type registryState interface {
	KVPut(key []byte, value interface{}) error
	KVGet(key []byte, out interface{}) (bool, error)
	KVDelete(key []byte) error
}

// CollectionRecord is the stored form of a reward collection asset.
type CollectionRecord struct {
	Address           [32]byte
	Name              string
	URI               string
	Attributes        []Attribute
	Royalty           Royalty
	PermanentBurn     bool
	PermanentFreeze   bool
	PermanentTransfer bool
	OracleHook        [32]byte
	Authority         [32]byte
	AuthorityBump     uint8
	Minted            uint64
}

// AssetRecord is the stored form of a single minted voucher asset.
type AssetRecord struct {
	Address    [32]byte
	Collection [32]byte
	Name       string
	URI        string
	Owner      [20]byte
}

// Registry is a state-backed AssetService. Collections live at their derived
// collection address and each minted asset at a sequence-derived address, so
// the daemon runs without an external asset host.
type Registry struct {
	st registryState
}

// NewRegistry creates an asset registry over the provided state manager.
func NewRegistry(st registryState) *Registry {
	return &Registry{st: st}
}

// CreateCollection stores the collection record. The supplied authority must
// carry the manager address with its derivation bump.
func (r *Registry) CreateCollection(spec CollectionSpec) ([32]byte, error) {
	if err := checkManagerAuthority(spec.Authority); err != nil {
		return [32]byte{}, err
	}
	var existing CollectionRecord
	found, err := r.st.KVGet(spec.Address[:], &existing)
	if err != nil {
		return [32]byte{}, err
	}
	if found {
		return [32]byte{}, fmt.Errorf("reward: collection %x already exists", spec.Address)
	}
	rec := &CollectionRecord{
		Address:           spec.Address,
		Name:              spec.Name,
		URI:               spec.URI,
		Attributes:        append([]Attribute(nil), spec.Attributes...),
		Royalty:           spec.Royalty,
		PermanentBurn:     spec.PermanentBurn,
		PermanentFreeze:   spec.PermanentFreeze,
		PermanentTransfer: spec.PermanentTransfer,
		OracleHook:        spec.OracleHook,
		Authority:         spec.Authority.Address,
		AuthorityBump:     spec.Authority.Bump,
	}
	if err := r.st.KVPut(spec.Address[:], rec); err != nil {
		return [32]byte{}, err
	}
	return spec.Address, nil
}

// MintAsset mints the next asset under the collection and returns its derived
// address. The asset display name combines the collection name and voucher id.
func (r *Registry) MintAsset(spec AssetSpec) ([32]byte, error) {
	col := new(CollectionRecord)
	found, err := r.st.KVGet(spec.Collection[:], col)
	if err != nil {
		return [32]byte{}, err
	}
	if !found {
		return [32]byte{}, fmt.Errorf("reward: collection %x not found", spec.Collection)
	}
	if spec.Authority.Address != col.Authority || spec.Authority.Bump != col.AuthorityBump {
		return [32]byte{}, ErrInvalidRewardAuthority
	}
	col.Minted++
	addr := state.AssetAddress(spec.Collection, col.Minted)
	asset := &AssetRecord{
		Address:    addr,
		Collection: spec.Collection,
		Name:       fmt.Sprintf("%s #%d", col.Name, spec.VoucherID),
		URI:        spec.URI,
		Owner:      spec.Owner,
	}
	if err := r.st.KVPut(addr[:], asset); err != nil {
		return [32]byte{}, err
	}
	if err := r.st.KVPut(spec.Collection[:], col); err != nil {
		return [32]byte{}, err
	}
	return addr, nil
}

// BurnAsset removes a minted asset. The asset must belong to the named
// collection and the authority must match the collection's.
func (r *Registry) BurnAsset(asset, collection [32]byte, authority Authority) error {
	col := new(CollectionRecord)
	found, err := r.st.KVGet(collection[:], col)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("reward: collection %x not found", collection)
	}
	if authority.Address != col.Authority || authority.Bump != col.AuthorityBump {
		return ErrInvalidRewardAuthority
	}
	rec := new(AssetRecord)
	found, err = r.st.KVGet(asset[:], rec)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("reward: asset %x not found", asset)
	}
	if rec.Collection != collection {
		return fmt.Errorf("reward: asset %x not in collection %x", asset, collection)
	}
	return r.st.KVDelete(asset[:])
}

// CollectionAuthority reports the update authority of a stored collection.
func (r *Registry) CollectionAuthority(collection [32]byte) ([32]byte, bool) {
	col := new(CollectionRecord)
	found, err := r.st.KVGet(collection[:], col)
	if err != nil || !found {
		return [32]byte{}, false
	}
	return col.Authority, true
}

// Asset retrieves a minted asset record.
func (r *Registry) Asset(addr [32]byte) (*AssetRecord, bool) {
	rec := new(AssetRecord)
	found, err := r.st.KVGet(addr[:], rec)
	if err != nil || !found {
		return nil, false
	}
	return rec, true
}

func checkManagerAuthority(authority Authority) error {
	manager := state.ManagerAddress()
	if authority.Address != manager || authority.Bump != state.Bump(manager) {
		return ErrInvalidRewardAuthority
	}
	return nil
}
