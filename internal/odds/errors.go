package odds

import "errors"

// Taxonomia de erros do provedor. Os quatro fetches regionais colapsam num
// único erro no join; nenhum é retentado automaticamente.
var (
	ErrNetwork         = errors.New("network failure")
	ErrRateLimited     = errors.New("rate limit exceeded")
	ErrDecode          = errors.New("decode failure")
	ErrInvalidResponse = errors.New("invalid response")
	ErrTimeout         = errors.New("request timeout")
)
