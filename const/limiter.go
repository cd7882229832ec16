package _const

const (
	// DefaultLimiter 对比模式下同时运行的算法数量
	DefaultLimiter int64 = 3
	// DefaultCacheSize 本地缓存的调度结果数量
	DefaultCacheSize = 16
)
