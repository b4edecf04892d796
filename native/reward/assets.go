package reward

// Attribute is a descriptive key/value pair attached to a collection asset.
type Attribute struct {
	Key   string
	Value string
}

// Authority is the signed capability presented on every asset call. The
// address is always the manager singleton; the bump proves the derivation.
type Authority struct {
	Address [32]byte
	Bump    uint8
}

// Royalty configures the resale fee enforced on collection assets.
type Royalty struct {
	BasisPoints uint16
	Recipient   [32]byte
}

// CollectionSpec describes a reward collection asset to be created by the
// asset service. Permanent delegates keep the manager in control of burn,
// freeze and transfer for every asset minted under the collection, and the
// oracle hook points lifecycle validation at the protocol singleton.
type CollectionSpec struct {
	Address           [32]byte
	Name              string
	URI               string
	Attributes        []Attribute
	Royalty           Royalty
	PermanentBurn     bool
	PermanentFreeze   bool
	PermanentTransfer bool
	OracleHook        [32]byte
	Authority         Authority
}

// AssetSpec describes a single voucher asset minted under a collection. The
// service derives the asset name from the collection and voucher id.
type AssetSpec struct {
	Collection [32]byte
	VoucherID  uint64
	URI        string
	Owner      [20]byte
	Authority  Authority
}

// AssetService is the external collaborator managing collection assets. All
// calls are invoked under the manager's authority.
type AssetService interface {
	CreateCollection(spec CollectionSpec) ([32]byte, error)
	MintAsset(spec AssetSpec) ([32]byte, error)
	BurnAsset(asset, collection [32]byte, authority Authority) error
	// CollectionAuthority reports the update authority of an existing
	// collection, used to reject vouchers registered against foreign assets.
	CollectionAuthority(collection [32]byte) ([32]byte, bool)
}
