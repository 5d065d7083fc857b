package repository

// RejectReason says why an insert was refused.
type RejectReason string

const (
	RejectEmptyUsername     RejectReason = "empty_username"
	RejectEmptyEmail        RejectReason = "empty_email"
	RejectEmptyPassword     RejectReason = "empty_password"
	RejectDuplicateUsername RejectReason = "duplicate_username"
)

// InsertStatus is the state of an InsertResult. The zero value is
// StatusUnknown, which is what Insert returns alongside an error.
type InsertStatus int

const (
	StatusUnknown InsertStatus = iota
	StatusAccepted
	StatusRejected
)

// InsertResult is the outcome of UserStore.Insert: either accepted, or
// rejected with a reason. Rejections are expected and never reported as errors.
type InsertResult struct {
	Status InsertStatus
	Reason RejectReason
}

// Accepted is the result of a successful insert.
func Accepted() InsertResult { return InsertResult{Status: StatusAccepted} }

// Rejected builds a rejected result.
func Rejected(reason RejectReason) InsertResult {
	return InsertResult{Status: StatusRejected, Reason: reason}
}

// OK reports whether the record was stored.
func (r InsertResult) OK() bool { return r.Status == StatusAccepted }

func (r InsertResult) String() string {
	switch r.Status {
	case StatusAccepted:
		return "accepted"
	case StatusRejected:
		return "rejected: " + string(r.Reason)
	default:
		return "unknown"
	}
}
