package interfaces

import "context"

// WorkQueue 外部 worker 的任务队列，返回入队后的队列长度
type WorkQueue interface {
	Push(ctx context.Context, queueName string, payload interface{}) (int, error)
}
