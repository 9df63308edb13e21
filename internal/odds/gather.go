package odds

import (
	"context"
	"sync"
)

// gatherAll executa N operações falíveis em paralelo e espera todas
// terminarem (barreira) antes de devolver os resultados na ordem de entrada.
// Política de join: se qualquer operação falhar, o conjunto inteiro falha
// com o primeiro erro observado (menor índice); não há resultado parcial.
func gatherAll[T any](ctx context.Context, fns []func(ctx context.Context) (T, error)) ([]T, error) {
	results := make([]T, len(fns))
	errs := make([]error, len(fns))

	var wg sync.WaitGroup
	for i, fn := range fns {
		wg.Add(1)
		go func(i int, fn func(ctx context.Context) (T, error)) {
			defer wg.Done()
			results[i], errs[i] = fn(ctx)
		}(i, fn)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
