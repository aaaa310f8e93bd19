package model

// 注文と決済が共有するステータス
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// 遷移表。動けるのはPENDINGからだけで、PAID/CANCELLEDは終端。
func (s Status) CanTransitionTo(next Status) bool {
	if s != StatusPending {
		return false
	}
	return next == StatusPaid || next == StatusCancelled
}
