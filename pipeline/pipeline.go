package pipeline

import (
	"context"
	"fmt"

	"github.com/gridmind/gridkit/core"
)

// Pipeline 是 Gridkit 的核心抽象：把预测流程拆成可组合的 Node 链。
// 标准链为 Normalize → Derive → Infer → Assess → Recommend。
type Pipeline struct {
	Nodes []Node
}

// Run 依次执行所有 Node，任何一个失败就终止并返回带阶段名的错误。
// 错误保留原始错误链，调用方可用 errors.Is 判断降级类错误。
func (p *Pipeline) Run(ctx context.Context, pctx *core.PredictionContext) error {
	for _, node := range p.Nodes {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := node.Process(ctx, pctx); err != nil {
			return fmt.Errorf("node %s: %w", node.Name(), err)
		}
	}
	return nil
}
