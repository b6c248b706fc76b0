package feast

import (
	"context"
	"fmt"
	"strings"

	"github.com/gridmind/gridkit/core"
)

// DefaultFeatureView 是项目属性在 Feast 里的默认特征视图名。
const DefaultFeatureView = "project_attributes"

// entityKey 是项目实体的 join key。
const entityKey = "project_id"

// sourceFields 是从在线存储取回的项目属性列。
// Delay_months 是训练标签，不在线上存储；派生列由 Calculator 本地计算。
var sourceFields = []string{
	core.FieldProjectType,
	core.FieldState,
	core.FieldLatitude,
	core.FieldLongitude,
	core.FieldTerrain,
	core.FieldBaseCost,
	core.FieldSteelPriceIndex,
	core.FieldCementPriceIndex,
	core.FieldLabourWage,
	core.FieldRegulatoryDelay,
	core.FieldHistoricalDelayCount,
	core.FieldRainfall,
	core.FieldVendorReliability,
	core.FieldMaterialAvailability,
	core.FieldDemandSupplyPressure,
	core.FieldSkilledManpower,
	core.FieldPlannedTimeline,
	core.FieldEnvRiskIndex,
}

// Source 把 Feast 在线存储包装成项目解析器（core.ProjectResolver）。
//
// 批量预测按 project_id 取项目属性特征向量，键按规范列名返回，
// 可直接作为预测输入送进归一化层。
type Source struct {
	client Client
	view   string
	refs   []string
}

// SourceOption Source 配置选项
type SourceOption func(*Source)

// WithFeatureView 配置选项：自定义特征视图名
func WithFeatureView(view string) SourceOption {
	return func(s *Source) {
		s.view = view
	}
}

// NewSource 创建一个以 Feast 为后端的项目解析器。
func NewSource(client Client, opts ...SourceOption) *Source {
	s := &Source{client: client, view: DefaultFeatureView}
	for _, opt := range opts {
		opt(s)
	}
	s.refs = make([]string, len(sourceFields))
	for i, f := range sourceFields {
		s.refs[i] = s.view + ":" + f
	}
	return s
}

func (s *Source) Name() string { return "feast/" + s.view }

// Resolve 把项目 ID 解析成预测输入（规范列名 -> 值）。
// 在线存储没有该实体或所有特征都为空时返回 ErrProjectNotFound。
func (s *Source) Resolve(ctx context.Context, projectID string) (map[string]any, error) {
	resp, err := s.client.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{
		Features:   s.refs,
		EntityRows: []map[string]any{{entityKey: projectID}},
	})
	if err != nil {
		return nil, fmt.Errorf("resolve project %q: %w", projectID, err)
	}
	if len(resp.FeatureVectors) == 0 {
		return nil, core.ErrProjectNotFound
	}

	values := resp.FeatureVectors[0].Values
	input := make(map[string]any, len(values))
	for ref, v := range values {
		if v == nil {
			continue
		}
		input[trimView(ref)] = v
	}
	if len(input) == 0 {
		return nil, core.ErrProjectNotFound
	}
	return input, nil
}

func (s *Source) Close() error {
	return s.client.Close()
}

// trimView 去掉特征引用的视图前缀："project_attributes:Base_Cost_Cr" -> "Base_Cost_Cr"。
func trimView(ref string) string {
	if i := strings.IndexByte(ref, ':'); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

var _ core.ProjectResolver = (*Source)(nil)
