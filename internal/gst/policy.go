package gst

import "fmt"

// PolicyKind tags the state comparison rule used to classify a transaction
type PolicyKind string

const (
	// PolicySameAsCompany treats a sale as intra-state when the customer's
	// code equals the company's code
	PolicySameAsCompany PolicyKind = "same_as_company"

	// PolicyFixedReference treats a sale as intra-state when the customer's
	// code equals a fixed reference code, ignoring the company's code
	PolicyFixedReference PolicyKind = "fixed_reference"
)

// StateComparisonPolicy decides whether a transaction is intra-state.
// Both codes passed to IntraState are already resolved; an unknown customer
// code arrives as "".
type StateComparisonPolicy struct {
	Kind      PolicyKind
	Reference string
}

// SameAsCompany returns the default policy
func SameAsCompany() StateComparisonPolicy {
	return StateComparisonPolicy{Kind: PolicySameAsCompany}
}

// FixedReferenceState returns the historical policy comparing against code.
// An invalid code falls back to DefaultStateCode.
func FixedReferenceState(code string) StateComparisonPolicy {
	normalized, ok := NormalizeStateCode(code)
	if !ok {
		normalized = DefaultStateCode
	}
	return StateComparisonPolicy{Kind: PolicyFixedReference, Reference: normalized}
}

// ParsePolicy builds a policy from its configured name
func ParsePolicy(kind, reference string) (StateComparisonPolicy, error) {
	switch PolicyKind(kind) {
	case "", PolicySameAsCompany:
		return SameAsCompany(), nil
	case PolicyFixedReference:
		return FixedReferenceState(reference), nil
	default:
		return StateComparisonPolicy{}, fmt.Errorf("unknown state comparison policy: %s", kind)
	}
}

// IntraState applies the policy to resolved codes
func (p StateComparisonPolicy) IntraState(customer, company string) bool {
	if customer == "" {
		return false
	}
	switch p.Kind {
	case PolicyFixedReference:
		return customer == p.Reference
	default:
		return customer == company
	}
}

// String returns the policy name recorded on every breakdown
func (p StateComparisonPolicy) String() string {
	if p.Kind == PolicyFixedReference {
		return fmt.Sprintf("%s(%s)", p.Kind, p.Reference)
	}
	return string(PolicySameAsCompany)
}
