package emailqueue

import "maps"

// Job is one outbound email: who receives it, which template renders it and
// the variables the template sees. NotificationID links the job back to its
// notification in logs.
type Job struct {
	ID             string         `json:"id"`
	NotificationID string         `json:"notificationId,omitempty"`
	To             string         `json:"to"`
	Template       string         `json:"template"`
	Variables      map[string]any `json:"variables"`
}

func (j Job) clone() Job {
	j.Variables = maps.Clone(j.Variables)
	if j.Variables == nil {
		j.Variables = map[string]any{}
	}
	return j
}
