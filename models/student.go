package models

// Student is a directory entry from the remote school backend, used only
// for identity resolution. Field names follow the backend contract.
type Student struct {
	ID            int    `json:"id"`
	StudentNumber string `json:"student_number"`
	Name          string `json:"name"`
	Class         string `json:"class,omitempty"`
	Campus        string `json:"campus,omitempty"`
}
