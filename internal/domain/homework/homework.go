// internal/domain/homework/homework.go
package homework

// Status is the review state reported by the Practicum API for a homework.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

// Keys of the API payload.
const (
	KeyHomeworks    = "homeworks"
	KeyCurrentDate  = "current_date"
	KeyHomeworkName = "homework_name"
	KeyStatus       = "status"
)

// Verdicts maps every known status to the text shown in chat.
var Verdicts = map[Status]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// Record is a single element of the "homeworks" list as decoded from JSON.
// It lives for one poll cycle only.
type Record map[string]any

// Verdict returns the chat text for s and whether s is known.
func (s Status) Verdict() (string, bool) {
	v, ok := Verdicts[s]
	return v, ok
}
