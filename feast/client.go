package feast

import (
	"context"
	"time"
)

// Client 是 Feast Feature Store 在线特征的客户端接口。
//
// 项目属性（成本、工期、地形等）可以托管在 Feast 的在线存储里，
// 批量预测时按 project_id 实时取回。接口只保留在线读路径：
// 离线训练数据走 CSV（dataset 包），不经过 Feast。
//
// 设计原则：
//   - 领域层：Client 接口 + Source（source.go）
//   - 基础设施层：GrpcClient（官方 SDK）实现 Client
//   - 高内聚低耦合：通过接口抽象，可以替换实现或注入假客户端测试
//
// 参考：https://github.com/feast-dev/feast
type Client interface {
	// GetOnlineFeatures 获取在线特征（用于实时预测）。
	//
	// 参数：
	//   - features: 特征引用列表，例如 ["project_attributes:Base_Cost_Cr"]
	//   - entityRows: 实体行，例如 [{"project_id": "PRJ-001"}]
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// Close 关闭客户端连接
	Close() error
}

// GetOnlineFeaturesRequest 获取在线特征请求
type GetOnlineFeaturesRequest struct {
	// Features 特征引用列表，格式 "feature_view:feature_name"
	Features []string

	// EntityRows 实体行，例如 [{"project_id": "PRJ-001"}, {"project_id": "PRJ-002"}]
	EntityRows []map[string]any

	// Project 项目名称（可选，为空时用客户端默认值）
	Project string
}

// GetOnlineFeaturesResponse 获取在线特征响应
type GetOnlineFeaturesResponse struct {
	// FeatureVectors 特征向量列表，每个元素对应一个实体行
	FeatureVectors []FeatureVector
}

// FeatureVector 特征向量
type FeatureVector struct {
	// Values 特征值，key 为特征引用，value 为特征值
	Values map[string]any

	// EntityRow 对应的实体行
	EntityRow map[string]any
}

// ClientOption Feast 客户端配置选项
type ClientOption func(*ClientConfig)

// ClientConfig Feast 客户端配置
type ClientConfig struct {
	// Endpoint 服务端点
	Endpoint string

	// Project Feast 项目名称
	Project string

	// Timeout 超时时间
	Timeout time.Duration

	// Auth 认证信息
	Auth *AuthConfig
}

// AuthConfig 认证配置
type AuthConfig struct {
	// Type 认证类型，目前支持 static（gRPC 静态 Token）
	Type string

	// Token 静态 Token
	Token string
}

// WithTimeout 配置选项：设置超时时间
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.Timeout = timeout
	}
}

// WithAuth 配置选项：设置认证信息
func WithAuth(auth *AuthConfig) ClientOption {
	return func(c *ClientConfig) {
		c.Auth = auth
	}
}
