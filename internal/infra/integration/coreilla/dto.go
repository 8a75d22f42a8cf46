package coreilla

// SendFollowUpInput: campos do form multipart que o webhook espera
type SendFollowUpInput struct {
	CartContentsHTML string
	Sequence         int
	Email            string
	Name             string
}

// FollowUpResponse: shape fixo {status: string, id?: string}. ID vazio
// significa que o webhook aceitou a chamada mas não disparou o email.
type FollowUpResponse struct {
	Status string `json:"status"`
	ID     string `json:"id,omitempty"`
}
