// Package interrupt 把操作系统中断信号映射成一次性通道。
// 订阅只能消费一次：收到第一个信号后通道关闭并停止监听。
package interrupt

import (
	"os"
	"os/signal"
	"syscall"
)

// Port 中断订阅端口。生产实现监听 SIGINT/SIGTERM，测试实现手动触发。
type Port interface {
	// Subscribe 返回一次性接收端，最多只会就绪一次。
	Subscribe() <-chan struct{}
}

// Signals 基于 os/signal 的生产实现。
type Signals struct{}

var _ Port = Signals{}

// Subscribe 实现 Port。
func (Signals) Subscribe() <-chan struct{} {
	out := make(chan struct{})
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		signal.Stop(sig)
		close(out)
	}()
	return out
}

// Manual 测试用实现：Trigger 使所有已订阅的接收端就绪。
type Manual struct {
	subs []chan struct{}
}

var _ Port = (*Manual)(nil)

// Subscribe 实现 Port。
func (m *Manual) Subscribe() <-chan struct{} {
	ch := make(chan struct{})
	m.subs = append(m.subs, ch)
	return ch
}

// Trigger 触发一次中断。重复调用是空操作。
func (m *Manual) Trigger() {
	for _, ch := range m.subs {
		select {
		case <-ch:
			// 已关闭
		default:
			close(ch)
		}
	}
}
