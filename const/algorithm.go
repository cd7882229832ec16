package _const

import (
	"errors"
	"fmt"
)

var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Algorithm 调度算法
type Algorithm int

const (
	AlgorithmFCFS          Algorithm = 0x00000001 // 先来先服务
	AlgorithmShortestFirst Algorithm = 0x00000002 // 短作业优先，新作业到达时重新评估
	AlgorithmPriority      Algorithm = 0x00000003 // 优先级调度，新作业到达时重新评估
)

// Algorithms 所有支持的调度算法，按输出顺序排列
var Algorithms = []Algorithm{AlgorithmFCFS, AlgorithmShortestFirst, AlgorithmPriority}

func (a Algorithm) String() string {
	switch a {
	case AlgorithmFCFS:
		return "FCFS"
	case AlgorithmShortestFirst:
		return "ShortestFirst"
	case AlgorithmPriority:
		return "Priority"
	default:
		return "Unknown"
	}
}

func (a Algorithm) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Algorithm) UnmarshalText(text []byte) error {
	v, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// ParseAlgorithm 名称区分大小写，与命令行参数保持一致
func ParseAlgorithm(name string) (Algorithm, error) {
	for _, a := range Algorithms {
		if a.String() == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}
