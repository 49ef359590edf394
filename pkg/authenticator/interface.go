package authenticator

// TokenEngine generates and verifies tokens carrying an object of type T.
type TokenEngine[T any] interface {
	Generate(sub string, obj T) (string, error)
	Verify(token string) (T, error)
}
