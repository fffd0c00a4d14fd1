package chrome

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// PollUntil 以 interval 为间隔检查 cond,直到返回true、cond出错、超时或ctx被取消
// 超时返回包装了 ErrTimeout 的错误;调用方取消返回 ctx.Err()
func PollUntil(ctx context.Context, timeout, interval time.Duration, cond func(ctx context.Context) (bool, error)) error {
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		ok, err := cond(waitCtx)
		if ok {
			return nil
		}
		if err != nil {
			if waitCtx.Err() == nil {
				return err
			}
			// 条件检查因超时被中断,按超时处理
		}
		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("%w (%s)", ErrTimeout, timeout)
		case <-ticker.C:
		}
	}
}

// timeoutErr 将驱动层的 deadline 错误统一为 ErrTimeout
func timeoutErr(parent context.Context, err error, what string, timeout time.Duration) error {
	if err == nil {
		return nil
	}
	if parent.Err() != nil {
		return parent.Err()
	}
	if isDeadline(err) {
		return fmt.Errorf("%w: %s (%s)", ErrTimeout, what, timeout)
	}
	return fmt.Errorf("%s: %w", what, err)
}

func isDeadline(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
