package harness

import (
	"math"
	"time"

	"github.com/montanaflynn/stats"
)

// Result 一个 (策略, 参数) 组合的测量结果，时间单位都是纳秒
type Result struct {
	Strategy    string    `json:"strategy" bson:"strategy"`
	StringCount int       `json:"stringCount" bson:"stringCount"`
	CacheHit    bool      `json:"cacheHit" bson:"cacheHit"`
	Threads     int       `json:"threads" bson:"threads"`
	Scores      []float64 `json:"scores" bson:"scores"`
	Mean        float64   `json:"mean" bson:"mean"`
	StdDev      float64   `json:"stdDev" bson:"stdDev"`
	Error       float64   `json:"error" bson:"error"`
	Min         float64   `json:"min" bson:"min"`
	Max         float64   `json:"max" bson:"max"`
	NsPerString float64   `json:"nsPerString" bson:"nsPerString"`
	TableSize   int       `json:"tableSize" bson:"tableSize"`
	Timestamp   time.Time `json:"timestamp" bson:"timestamp"`
}

// 99.9% 置信区间对应的正态分位数
const z999 = 3.2905

// summarize 填充 Mean/StdDev/Error/Min/Max/NsPerString。
// 少于两个样本时 StdDev 和 Error 记为 0。
func (r *Result) summarize() error {
	data := stats.Float64Data(r.Scores)
	var err error
	if r.Mean, err = data.Mean(); err != nil {
		return err
	}
	if r.Min, err = data.Min(); err != nil {
		return err
	}
	if r.Max, err = data.Max(); err != nil {
		return err
	}
	if len(data) > 1 {
		if r.StdDev, err = data.StandardDeviationSample(); err != nil {
			return err
		}
		r.Error = z999 * r.StdDev / math.Sqrt(float64(len(data)))
	}
	r.NsPerString = r.Mean / float64(r.StringCount)
	return nil
}
