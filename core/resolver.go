package core

import "context"

// ProjectResolver 是项目属性解析的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（store、feast）实现
//   - 批量预测只依赖此接口：把不透明的项目 ID 解析成请求形状的属性映射，
//     单个 ID 解析失败不影响批次内其他项目
//
// 实现：
//   - store.ProjectStore 实现此接口（memory / redis 后端）
//   - feast.Source 实现此接口（Feature Store 在线特征）
type ProjectResolver interface {
	// Name 返回解析器名称（用于日志/监控）
	Name() string

	// Resolve 把项目 ID 解析成预测输入（任意命名约定的属性映射）。
	// ID 不存在时返回 ErrProjectNotFound。
	Resolve(ctx context.Context, projectID string) (map[string]any, error)

	// Close 释放底层资源
	Close() error
}

// ErrProjectNotFound 表示项目 ID 无法解析。
var ErrProjectNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "project not found")
