package protocol

// Validation is the state of a single lifecycle gate.
type Validation uint8

const (
	ValidationApproved Validation = iota
	ValidationRejected
)

// Protocol is the singleton circuit breaker for reward asset lifecycles. The
// four gates always flip together: all approved or all rejected.
type Protocol struct {
	ValidateCreate   uint8
	ValidateTransfer uint8
	ValidateBurn     uint8
	ValidateUpdate   uint8
	Bump             uint8
}

// AllApproved reports whether every lifecycle gate is approved.
func (p *Protocol) AllApproved() bool {
	return p.ValidateCreate == uint8(ValidationApproved) &&
		p.ValidateTransfer == uint8(ValidationApproved) &&
		p.ValidateBurn == uint8(ValidationApproved) &&
		p.ValidateUpdate == uint8(ValidationApproved)
}

func (p *Protocol) setAll(v Validation) {
	p.ValidateCreate = uint8(v)
	p.ValidateTransfer = uint8(v)
	p.ValidateBurn = uint8(v)
	p.ValidateUpdate = uint8(v)
}

// Manager is the singleton capability holder. Its derived address acts as the
// update, mint and burn authority for every reward collection asset.
type Manager struct {
	Bump uint8
}

// AdminProfile is a protocol administrator record.
type AdminProfile struct {
	Identity  [20]byte
	Username  string
	CreatedAt uint64
	Bump      uint8
}
