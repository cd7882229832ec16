package _const

import (
	"errors"
	"fmt"
)

var ErrUnknownPreemptPolicy = errors.New("unknown preempt policy")

// PreemptPolicy 被拆分的作业是否允许再次被抢占
type PreemptPolicy int

const (
	PreemptUnbounded PreemptPolicy = 0x00000001 // 剩余部分可以被无限次拆分
	PreemptOnce      PreemptPolicy = 0x00000002 // 作业被拆分一次后剩余部分执行到结束
)

func (p PreemptPolicy) String() string {
	switch p {
	case PreemptUnbounded:
		return "unbounded"
	case PreemptOnce:
		return "once"
	default:
		return "unknown"
	}
}

func (p PreemptPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func ParsePreemptPolicy(s string) (PreemptPolicy, error) {
	switch s {
	case "", "unbounded":
		return PreemptUnbounded, nil
	case "once":
		return PreemptOnce, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPreemptPolicy, s)
	}
}
