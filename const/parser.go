package _const

import (
	"github.com/robfig/cron/v3"
)

// Parser 定时重跑模拟的时间解析器，支持@every等描述符
var Parser = cron.NewParser(cron.Minute | cron.Hour |
	cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
