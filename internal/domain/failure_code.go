package domain

// FailureCode names the single reason a reservation attempt stopped.
// Codes are listed in pipeline order.
type FailureCode string

const (
	FailureInvalidInput     FailureCode = "INVALID_INPUT"
	FailureEmptyEmail       FailureCode = "EMPTY_EMAIL"
	FailureEmptyName        FailureCode = "EMPTY_NAME"
	FailureNegativeQuantity FailureCode = "NEGATIVE_QUANTITY"
	FailureReadStore        FailureCode = "READ_STORE_ERROR"
	FailureCapacityExceeded FailureCode = "CAPACITY_EXCEEDED"
	FailureWriteStore       FailureCode = "WRITE_STORE_ERROR"
)

var FailureCodes = []FailureCode{
	FailureInvalidInput,
	FailureEmptyEmail,
	FailureEmptyName,
	FailureNegativeQuantity,
	FailureReadStore,
	FailureCapacityExceeded,
	FailureWriteStore,
}

func (c FailureCode) String() string {
	return string(c)
}

// IsValidation reports input errors; the caller has to resubmit corrected input.
func (c FailureCode) IsValidation() bool {
	switch c {
	case FailureInvalidInput, FailureEmptyEmail, FailureEmptyName, FailureNegativeQuantity:
		return true
	}
	return false
}

// IsInfrastructure reports store failures.
func (c FailureCode) IsInfrastructure() bool {
	return c == FailureReadStore || c == FailureWriteStore
}

// IsRejection reports a business-rule refusal, which is not an error.
func (c FailureCode) IsRejection() bool {
	return c == FailureCapacityExceeded
}

// Retryable reports whether resending the same request may succeed.
func (c FailureCode) Retryable() bool {
	return c.IsInfrastructure()
}
