package usecase

// Códigos usados pelos handlers para decidir o status HTTP
const (
	CodeFetchFailed   = "FETCH_FAILED"
	CodeDatabaseError = "DATABASE_ERROR"
)

// DomainError: falha esperada de negócio ou da origem de dados (ex: coreforce
// indisponível). A operação aborta antes de qualquer escrita.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError: falha de infraestrutura (banco, fila, rede interna)
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}
