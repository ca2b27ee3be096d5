package types

import "strconv"

// OutcomeKind — явный исход операции записи. Контроллер обязан разобрать каждый вариант.
type OutcomeKind int

const (
	OutcomeCreated OutcomeKind = iota + 1
	OutcomeUpdated
	OutcomeDeleted
	OutcomeDuplicate
	OutcomeNotFound
	OutcomeInvalid
	OutcomePersistenceError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	case OutcomeDeleted:
		return "deleted"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeInvalid:
		return "invalid"
	case OutcomePersistenceError:
		return "persistence_error"
	}
	return "unknown"
}

type WriteOutcome struct {
	Kind         OutcomeKind
	OfficeNumber int64
	Err          error
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
