package _const

// SegmentStatus 执行片段的结束状态
type SegmentStatus int

const (
	SegmentCompleted SegmentStatus = 0x00000001 // 片段执行结束时作业完成
	SegmentPreempted SegmentStatus = 0x00000002 // 片段被抢占，剩余服务时间重新入队
)

func (s SegmentStatus) String() string {
	switch s {
	case SegmentCompleted:
		return "Completed"
	case SegmentPreempted:
		return "Preempted"
	default:
		return "Unknown"
	}
}

func (s SegmentStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
