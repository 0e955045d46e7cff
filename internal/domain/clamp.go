package domain

// ClampKind records which bound, if any, decided an applied allocation.
type ClampKind string

const (
	ClampNone        ClampKind = "none"
	ClampNonPositive ClampKind = "non_positive"
	ClampFunds       ClampKind = "funds"
	ClampOwed        ClampKind = "owed"
)

// ValidClampKinds is the set of clamp kinds accepted from storage.
var ValidClampKinds = map[ClampKind]bool{
	ClampNone: true, ClampNonPositive: true, ClampFunds: true, ClampOwed: true,
}
