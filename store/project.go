package store

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/gridmind/gridkit/core"
)

// KV key 前缀。
const (
	projectKeyPrefix    = "project:"
	predictionKeyPrefix = "prediction:"
)

// ProjectRecord 是项目档案的存储结构（JSON 序列化后写入 KV 后端）。
// 字段允许为零值：转换为预测输入时会补上典型默认。
type ProjectRecord struct {
	ProjectID                 string  `json:"project_id"`
	ProjectType               string  `json:"project_type"`
	Terrain                   string  `json:"terrain"`
	BaseCostCr                float64 `json:"base_cost_cr"`
	SteelPriceIndex           float64 `json:"steel_price_index"`
	CementPriceIndex          float64 `json:"cement_price_index"`
	LabourWageRsPerDay        float64 `json:"labour_wage_rs_per_day"`
	VendorReliability         float64 `json:"vendor_reliability"`
	MaterialAvailabilityIndex float64 `json:"material_availability_index"`
	SkilledManpowerPct        float64 `json:"skilled_manpower_pct"`
	RegulatoryDelayMonths     float64 `json:"regulatory_delay_months"`
	AvgAnnualRainfallCm       float64 `json:"avg_annual_rainfall_cm"`
	DemandSupplyPressure      string  `json:"demand_supply_pressure"`
	PlannedTimelineMonths     float64 `json:"planned_timeline_months"`
}

// ProjectStore 把任意 core.Store 后端包装成项目解析器：
// 批量预测按 ID 取项目档案并转换为请求形状的属性映射。
// 同时负责把最近一次预测结果回写到后端供看板查询。
type ProjectStore struct {
	kv core.Store
}

func NewProjectStore(kv core.Store) *ProjectStore {
	return &ProjectStore{kv: kv}
}

func (s *ProjectStore) Name() string { return "project_store/" + s.kv.Name() }

// Put 写入项目档案。
func (s *ProjectStore) Put(ctx context.Context, rec *ProjectRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, projectKeyPrefix+rec.ProjectID, data)
}

// Get 读取项目档案；不存在时返回 ErrProjectNotFound。
func (s *ProjectStore) Get(ctx context.Context, projectID string) (*ProjectRecord, error) {
	data, err := s.kv.Get(ctx, projectKeyPrefix+projectID)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, core.ErrProjectNotFound
		}
		return nil, err
	}
	var rec ProjectRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Resolve 把项目 ID 解析成预测输入（前端命名约定的属性映射）。
func (s *ProjectStore) Resolve(ctx context.Context, projectID string) (map[string]any, error) {
	rec, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return rec.PredictionInput(), nil
}

// SaveOutcome 回写某项目最近一次预测结果。
func (s *ProjectStore) SaveOutcome(ctx context.Context, projectID string, outcome *core.Outcome, ttl ...int) error {
	data, err := json.Marshal(outcome)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, predictionKeyPrefix+projectID, data, ttl...)
}

// LastOutcome 读取某项目最近一次预测结果；没有则返回 ErrStoreNotFound。
func (s *ProjectStore) LastOutcome(ctx context.Context, projectID string) (*core.Outcome, error) {
	data, err := s.kv.Get(ctx, predictionKeyPrefix+projectID)
	if err != nil {
		return nil, err
	}
	var outcome core.Outcome
	if err := json.Unmarshal(data, &outcome); err != nil {
		return nil, err
	}
	return &outcome, nil
}

func (s *ProjectStore) Close() error {
	return s.kv.Close()
}

// PredictionInput 把档案转换为预测输入：前端命名 + 零值补默认。
func (r *ProjectRecord) PredictionInput() map[string]any {
	projectType := "substation"
	if r.ProjectType != "" {
		projectType = strings.ReplaceAll(strings.ToLower(r.ProjectType), " ", "-")
	}
	terrain := "plains"
	if r.Terrain != "" {
		terrain = strings.ToLower(r.Terrain)
	}
	pressure := "medium"
	if r.DemandSupplyPressure != "" {
		pressure = strings.ToLower(r.DemandSupplyPressure)
	}

	return map[string]any{
		"projectType":                 projectType,
		"terrainType":                 terrain,
		"baseEstimatedCost":           orDefault(r.BaseCostCr, 1000),
		"steelPriceIndex":             orDefault(r.SteelPriceIndex, 100),
		"cementPriceIndex":            orDefault(r.CementPriceIndex, 100),
		"labourWageRate":              orDefault(r.LabourWageRsPerDay, 400),
		"vendorReliabilityScore":      orDefault(r.VendorReliability, 0.8),
		"materialAvailabilityIndex":   orDefault(r.MaterialAvailabilityIndex, 0.8),
		"skilledManpowerAvailability": orDefault(r.SkilledManpowerPct, 70),
		"regulatoryDelayEstimate":     r.RegulatoryDelayMonths,
		"annualRainfall":              orDefault(r.AvgAnnualRainfallCm, 100),
		"demandSupplyPressure":        pressure,
		"historicalDelayPattern":      "medium",
		"plannedTimelineMonths":       orDefault(r.PlannedTimelineMonths, 12),
	}
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

var _ core.ProjectResolver = (*ProjectStore)(nil)
