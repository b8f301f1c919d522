package loop

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type LoopUnitSuite struct {
	suite.Suite
}

func (s *LoopUnitSuite) TestRun(t provider.T) {
	t.Run("Should run posted closures in order", func(t provider.T) {
		l := New()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = l.Run(ctx) }()

		var (
			got []int
			wg  sync.WaitGroup
		)
		wg.Add(3)
		for i := range 3 {
			l.Post(func() {
				got = append(got, i)
				wg.Done()
			})
		}
		wg.Wait()

		assert.Equal(t, []int{0, 1, 2}, got)
	})

	t.Run("Should refuse posts after stop", func(t provider.T) {
		l := New()
		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- l.Run(ctx) }()

		cancel()
		select {
		case err := <-errCh:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(time.Second):
			t.Errorf("loop did not stop")
		}

		assert.False(t, l.Post(func() {}))
	})
}

func TestLoopUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(LoopUnitSuite))
}
