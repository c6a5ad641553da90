package txid

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Generate 根据出资参数生成模拟交易ID。
// 同一笔请求重试会得到不同ID，账本层不做去重。
func Generate(contributorID, projectID string, amount decimal.Decimal, kind string) string {
	seed := fmt.Sprintf("%s|%s|%s|%s|%d",
		contributorID, projectID, amount.StringFixed(2), kind, time.Now().UnixNano())
	sum := sha256.Sum256([]byte(seed))
	return "TXN-" + hex.EncodeToString(sum[:])[:32]
}
