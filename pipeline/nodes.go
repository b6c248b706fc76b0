package pipeline

import (
	"context"
	"fmt"

	"github.com/gridmind/gridkit/core"
	"github.com/gridmind/gridkit/feature"
	"github.com/gridmind/gridkit/infer"
	"github.com/gridmind/gridkit/recommend"
	"github.com/gridmind/gridkit/registry"
	"github.com/gridmind/gridkit/risk"
)

// NormalizeNode 把原始请求映射成规范特征向量。
type NormalizeNode struct {
	Normalizer *feature.Normalizer
}

func NewNormalizeNode() *NormalizeNode {
	return &NormalizeNode{Normalizer: feature.NewNormalizer()}
}

func (n *NormalizeNode) Name() string { return "normalize" }
func (n *NormalizeNode) Kind() Kind   { return KindNormalize }

func (n *NormalizeNode) Process(ctx context.Context, pctx *core.PredictionContext) error {
	pctx.Vector = n.Normalizer.Normalize(pctx.Input)
	return nil
}

// DeriveNode 计算工程派生特征。
type DeriveNode struct{}

func NewDeriveNode() *DeriveNode { return &DeriveNode{} }

func (n *DeriveNode) Name() string { return "derive" }
func (n *DeriveNode) Kind() Kind   { return KindDerive }

func (n *DeriveNode) Process(ctx context.Context, pctx *core.PredictionContext) error {
	if pctx.Vector == nil {
		return fmt.Errorf("feature vector not set")
	}
	pctx.Derived = feature.Derive(pctx.Vector)
	return nil
}

// InferNode 执行模型推理。Engine 按 生产 → Fallback 优先级出数；
// 两族都不可用且配置了 Heuristic 时退化为规则启发式。
type InferNode struct {
	Engine    *infer.Engine
	Heuristic *infer.Heuristic
}

func NewInferNode(engine *infer.Engine, heuristic *infer.Heuristic) *InferNode {
	return &InferNode{Engine: engine, Heuristic: heuristic}
}

func (n *InferNode) Name() string { return "infer" }
func (n *InferNode) Kind() Kind   { return KindInfer }

func (n *InferNode) Process(ctx context.Context, pctx *core.PredictionContext) error {
	if pctx.Vector == nil || pctx.Derived == nil {
		return fmt.Errorf("normalize and derive must run first")
	}

	raw, strategy, err := n.Engine.Predict(ctx, pctx.Vector, pctx.Derived)
	if err != nil {
		if n.Heuristic == nil || !core.IsUnavailable(err) {
			return err
		}
		raw, err = n.Heuristic.Predict(ctx, pctx.Vector, pctx.Derived)
		if err != nil {
			return err
		}
		strategy = n.Heuristic.Name()
	}

	pctx.Raw = raw
	pctx.StrategyName = strategy
	return nil
}

// AssessNode 按实际使用的策略选择评估逻辑：
// 生产路径用增强评估（多维度、上探 Critical），Fallback 用基础评估，
// 启发式路径只做阈值分级并固定置信度。
type AssessNode struct{}

func NewAssessNode() *AssessNode { return &AssessNode{} }

func (n *AssessNode) Name() string { return "assess" }
func (n *AssessNode) Kind() Kind   { return KindAssess }

func (n *AssessNode) Process(ctx context.Context, pctx *core.PredictionContext) error {
	if len(pctx.Raw) == 0 {
		return fmt.Errorf("infer must run first")
	}

	switch pctx.StrategyName {
	case infer.StrategyProduction:
		ra := risk.AssessProduction(pctx.Raw, pctx.Vector)
		pctx.Risk = &ra
		pctx.Confidence = risk.ConfidenceProduction(pctx.Vector)
	case infer.StrategyHeuristic:
		level := risk.AssessHeuristic(pctx.Raw[core.TargetCostOverrunPct], pctx.Raw[core.TargetDelayMonths])
		pctx.Risk = &core.RiskAssessment{Level: level}
		pctx.Confidence = risk.HeuristicConfidence
	default:
		ra := risk.AssessBasic(pctx.Raw)
		pctx.Risk = &ra
		pctx.Confidence = risk.ConfidenceBasic(pctx.Vector)
	}
	return nil
}

// RecommendNode 生成行动建议与风险因素清单。
// 启发式路径不出建议：没有模型依据的建议比没有建议更糟。
type RecommendNode struct {
	Generator *recommend.Generator
}

func NewRecommendNode(g *recommend.Generator) *RecommendNode {
	return &RecommendNode{Generator: g}
}

func (n *RecommendNode) Name() string { return "recommend" }
func (n *RecommendNode) Kind() Kind   { return KindRecommend }

func (n *RecommendNode) Process(ctx context.Context, pctx *core.PredictionContext) error {
	if pctx.Vector == nil || len(pctx.Raw) == 0 {
		return fmt.Errorf("infer must run first")
	}
	if pctx.StrategyName == infer.StrategyHeuristic {
		pctx.Recommendations = []core.Recommendation{}
		pctx.Factors = &core.RiskFactors{}
		return nil
	}

	pred := CommonTargets(pctx)
	pctx.Recommendations = n.Generator.Generate(pctx.Vector, pred)
	factors := risk.AnalyzeFactors(pctx.Vector, pred)
	pctx.Factors = &factors
	return nil
}

// CommonTargets 把原始预测折算成 Fallback 族目标键的统一视图。
// 生产族的键不同（cost_prediction 等），且没有显式的延期目标：
// 延期按 预测工期 − 计划工期 推出（下限 0）。
func CommonTargets(pctx *core.PredictionContext) map[string]float64 {
	if pctx.StrategyName != infer.StrategyProduction {
		return pctx.Raw
	}

	timeline, ok := pctx.Raw[core.TargetTimelinePrediction]
	if !ok {
		// 工期管线缺席（2/3 就绪）时沿用计划工期，不能让缺失值坍缩成 0。
		timeline = pctx.Vector.PlannedTimelineMonths
	}
	delay := timeline - pctx.Vector.PlannedTimelineMonths
	if delay < 0 {
		delay = 0
	}
	return map[string]float64{
		core.TargetDelayMonths:    delay,
		core.TargetCostOverrunPct: pctx.Raw[core.TargetOverrunPrediction],
		core.TargetTotalCostCr:    pctx.Raw[core.TargetCostPrediction],
		core.TargetTimelineMonths: timeline,
	}
}

// NewDefaultPipeline 组装标准五段链：Normalize → Derive → Infer → Assess → Recommend。
func NewDefaultPipeline(r *registry.Registry, g *recommend.Generator) *Pipeline {
	return &Pipeline{Nodes: []Node{
		NewNormalizeNode(),
		NewDeriveNode(),
		NewInferNode(infer.NewDefaultEngine(r), infer.NewHeuristic()),
		NewAssessNode(),
		NewRecommendNode(g),
	}}
}
