package service

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gridmind/gridkit/core"
	"github.com/gridmind/gridkit/infer"
	"github.com/gridmind/gridkit/pipeline"
	"github.com/gridmind/gridkit/recommend"
	"github.com/gridmind/gridkit/registry"
	"github.com/gridmind/gridkit/risk"
)

// 对外版本标识与降级说明。
const (
	modelVersion     = "1.0.0"
	heuristicVersion = "fallback-1.0"
	heuristicNote    = "Using fallback prediction logic"

	defaultMaxConcurrent = 8
)

// PredictionService 是预测的统一入口。
//
// 设计原则：
//   - 永远返回完整的响应结构：生产、Fallback、启发式三条路径产出同一形状
//   - 物理约束在出口收敛（超支率 [0,100]、延期 ≥ 0、总造价 ≥ 基准、工期 ≥ 1），
//     模型内部不做收敛，方便离线比对原始输出
//   - 批量预测单项隔离：一个项目解析/预测失败不影响批次内其他项目
type PredictionService struct {
	registry      *registry.Registry
	pipeline      *pipeline.Pipeline
	resolver      core.ProjectResolver
	maxConcurrent int
}

// Option 服务配置选项
type Option func(*PredictionService)

// WithResolver 配置批量预测用的项目解析器（store.ProjectStore / feast.Source）。
func WithResolver(r core.ProjectResolver) Option {
	return func(s *PredictionService) { s.resolver = r }
}

// WithPipeline 替换默认五段链（例如去掉 recommend 阶段的精简链）。
func WithPipeline(p *pipeline.Pipeline) Option {
	return func(s *PredictionService) { s.pipeline = p }
}

// WithMaxConcurrent 配置批量预测的并发上限。
func WithMaxConcurrent(n int) Option {
	return func(s *PredictionService) {
		if n > 0 {
			s.maxConcurrent = n
		}
	}
}

// New 创建预测服务。默认不带解析器（BatchPredict 需要 WithResolver）。
func New(reg *registry.Registry, gen *recommend.Generator, opts ...Option) *PredictionService {
	s := &PredictionService{
		registry:      reg,
		pipeline:      pipeline.NewDefaultPipeline(reg, gen),
		maxConcurrent: defaultMaxConcurrent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Predict 执行一次完整预测。
// 空请求被拒绝（ErrInvalidInput）；缺字段的请求不拒绝，由归一化层补默认。
func (s *PredictionService) Predict(ctx context.Context, input map[string]any) (*core.Outcome, error) {
	if len(input) == 0 {
		return nil, core.ErrInvalidInput
	}

	pctx := core.NewPredictionContext(input)
	if err := s.pipeline.Run(ctx, pctx); err != nil {
		return nil, err
	}
	return s.fold(pctx), nil
}

// BatchPredict 并发预测一批项目，按 ID 返回各自的结果或错误。
func (s *PredictionService) BatchPredict(ctx context.Context, projectIDs []string) (map[string]core.BatchResult, error) {
	if s.resolver == nil {
		return nil, core.NewDomainError(core.ModuleService, core.ErrorCodeNotSupported, "service: no project resolver configured")
	}

	results := make([]core.BatchResult, len(projectIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for i, id := range projectIDs {
		i, id := i, id
		g.Go(func() error {
			outcome, err := s.predictProject(gctx, id)
			if err != nil {
				results[i] = core.BatchResult{Err: err.Error()}
				return nil
			}
			results[i] = core.BatchResult{Outcome: outcome}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]core.BatchResult, len(projectIDs))
	for i, id := range projectIDs {
		out[id] = results[i]
	}
	return out, nil
}

func (s *PredictionService) predictProject(ctx context.Context, projectID string) (*core.Outcome, error) {
	input, err := s.resolver.Resolve(ctx, projectID)
	if err != nil {
		return nil, err
	}
	outcome, err := s.Predict(ctx, input)
	if err != nil {
		return nil, err
	}
	if sink, ok := s.resolver.(outcomeSink); ok {
		// 回写失败不影响预测结果本身
		_ = sink.SaveOutcome(ctx, projectID, outcome)
	}
	return outcome, nil
}

// outcomeSink 是解析器的可选能力：回写最近一次预测结果。
type outcomeSink interface {
	SaveOutcome(ctx context.Context, projectID string, outcome *core.Outcome, ttl ...int) error
}

// Train 用历史项目数据集训练整个 Fallback 族。
func (s *PredictionService) Train(csvPath string) error {
	return s.registry.Train(csvPath)
}

// Retrain 重训单个 Fallback 目标；target 为空时等价于 Train。
func (s *PredictionService) Retrain(target, csvPath string) error {
	return s.registry.Retrain(target, csvPath)
}

// ModelInfo 返回当前模型状态（加载情况、可用目标、特征结构）。
func (s *PredictionService) ModelInfo() core.ModelInfo {
	return s.registry.ModelInfo()
}

// Close 释放解析器持有的底层连接。
func (s *PredictionService) Close() error {
	if s.resolver != nil {
		return s.resolver.Close()
	}
	return nil
}

// fold 把预测上下文折算成对外响应，并做物理约束收敛。
func (s *PredictionService) fold(pctx *core.PredictionContext) *core.Outcome {
	vec := pctx.Vector
	common := pipeline.CommonTargets(pctx)

	overrun := clamp(common[core.TargetCostOverrunPct], 0, 100)
	delay := math.Max(0, common[core.TargetDelayMonths])
	total := math.Max(common[core.TargetTotalCostCr], vec.BaseCostCr)
	timeline := math.Max(1, common[core.TargetTimelineMonths])

	out := &core.Outcome{
		Predictions: core.Predictions{
			CostOverrunProbability:  round2(overrun),
			PredictedDelayMonths:    round2(delay),
			PredictedTotalCost:      round2(total),
			PredictedTimelineMonths: round2(timeline),
			RiskCategory:            pctx.Risk.Level,
			ConfidenceScore:         pctx.Confidence,
		},
		Recommendations: pctx.Recommendations,
		RiskFactors:     flattenFactors(pctx.Factors),
		Analysis: core.Analysis{
			ModelVersion:     modelVersion,
			PredictionDate:   time.Now().UTC(),
			DataCompleteness: risk.DataCompleteness(vec),
		},
	}
	if out.Recommendations == nil {
		out.Recommendations = []core.Recommendation{}
	}
	if pctx.StrategyName == infer.StrategyHeuristic {
		out.Analysis.ModelVersion = heuristicVersion
		out.Analysis.Note = heuristicNote
	}
	return out
}

// flattenFactors 保证四个类别都是非 nil 切片，JSON 里始终是数组而不是 null。
func flattenFactors(f *core.RiskFactors) core.RiskFactors {
	out := core.RiskFactors{
		Financial:     []core.RiskFactor{},
		Operational:   []core.RiskFactor{},
		Environmental: []core.RiskFactor{},
		External:      []core.RiskFactor{},
	}
	if f == nil {
		return out
	}
	if f.Financial != nil {
		out.Financial = f.Financial
	}
	if f.Operational != nil {
		out.Operational = f.Operational
	}
	if f.Environmental != nil {
		out.Environmental = f.Environmental
	}
	if f.External != nil {
		out.External = f.External
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
