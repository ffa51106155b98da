package eventbus

import "github.com/portfolio/internal/db"

type AboutEventType string

const (
	// AboutUpdated 在个人资料单例写入成功后发布
	AboutUpdated AboutEventType = "AboutUpdated"
)

// AboutEvent 携带写入后的行状态（未与默认值合并）
type AboutEvent struct {
	Type  AboutEventType
	About db.About
}

type AboutEventHandler = Handler[AboutEvent]
type AboutEventBus = Bus[AboutEventType, AboutEvent]

func NewAboutEventBus() *AboutEventBus {
	return NewBus[AboutEventType, AboutEvent]()
}
