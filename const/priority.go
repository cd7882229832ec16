package _const

import "strconv"

// Priority 作业优先级，数值越小优先级越高
type Priority int

const (
	PriorityHighest Priority = 0 // 最高优先级
)

func (p Priority) String() string {
	return strconv.Itoa(int(p))
}

// Less 判断p是否比v拥有更高的优先级
func (p Priority) Less(v Priority) bool {
	return p < v
}
