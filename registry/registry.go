package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gridmind/gridkit/core"
	"github.com/gridmind/gridkit/dataset"
	"github.com/gridmind/gridkit/feature"
	"github.com/gridmind/gridkit/model"
)

// 模型制品文件名。生产 Pipeline 由离线训练导出，Fallback 族由本地训练写出。
const (
	FileCostPipeline    = "cost_pipeline.json"
	FileOverrunPipeline = "overrun_pipeline.json"
	FileTimePipeline    = "time_pipeline.json"

	FileMultiOutput    = "multioutput_model.json"
	FileEncoders       = "encoders.json"
	FileScaler         = "scaler.json"
	FileFeatureColumns = "feature_columns.json"
)

// productionFiles 把生产目标映射到制品文件。
var productionFiles = map[string]string{
	core.TargetCostPrediction:     FileCostPipeline,
	core.TargetOverrunPrediction:  FileOverrunPipeline,
	core.TargetTimelinePrediction: FileTimePipeline,
}

// fallbackFile 返回单目标 Fallback 模型的制品文件名。
func fallbackFile(target string) string { return target + "_model.json" }

// Snapshot 是某一时刻完整的模型族视图。
// 读取方拿到的快照是不可变的：重训/重载永远整体替换指针，从不原地改。
type Snapshot struct {
	Production map[string]*model.Pipeline
	Fallback   map[string]*model.Ridge
	Multi      *model.MultiOutput
	Encoders   *feature.LabelEncoderSet
	Scaler     *feature.StandardScaler
	Columns    []string
}

// ProductionReady 判断生产族是否可用（3 个 Pipeline 至少就绪 2 个）。
func (s *Snapshot) ProductionReady() bool {
	return len(s.Production) >= 2
}

// FallbackReady 判断 Fallback 族是否可用（有模型且编码器/缩放器齐备）。
func (s *Snapshot) FallbackReady() bool {
	if s.Encoders == nil || s.Scaler == nil || len(s.Columns) == 0 {
		return false
	}
	return s.Multi != nil || len(s.Fallback) > 0
}

// Registry 是模型注册表：负责制品加载、本地训练与原子切换。
//
// 设计原则：
//   - 单写多读：写路径（Load/Train/Retrain）串行，读路径无锁争用
//   - 先把完整的替换族建在旁边，建成后一次性换指针；任何失败都不碰现役族
//   - 单个制品加载失败不致命，缺哪个就少哪个能力
type Registry struct {
	dir string

	mu       sync.RWMutex
	snapshot *Snapshot
}

// New 创建指向某制品目录的注册表（尚未加载）。
func New(dir string) *Registry {
	return &Registry{
		dir:      dir,
		snapshot: &Snapshot{Production: map[string]*model.Pipeline{}, Fallback: map[string]*model.Ridge{}},
	}
}

// Snapshot 返回当前模型族快照。调用方只读，不得修改。
func (r *Registry) Snapshot() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}

// Load 从制品目录加载两个模型族并整体切换。
// 单个制品缺失或损坏只是跳过，返回的切片记录跳过原因供调用方观测。
func (r *Registry) Load() []error {
	next := &Snapshot{
		Production: make(map[string]*model.Pipeline, len(productionFiles)),
		Fallback:   make(map[string]*model.Ridge, len(dataset.TargetOrder)),
	}
	var skipped []error

	for target, file := range productionFiles {
		p, err := model.LoadPipeline(filepath.Join(r.dir, file))
		if err != nil {
			skipped = append(skipped, fmt.Errorf("registry: %s: %w", file, err))
			continue
		}
		next.Production[target] = p
	}

	for _, target := range dataset.TargetOrder {
		m, err := model.LoadRidge(filepath.Join(r.dir, fallbackFile(target)))
		if err != nil {
			skipped = append(skipped, fmt.Errorf("registry: %s: %w", fallbackFile(target), err))
			continue
		}
		next.Fallback[target] = m
	}

	if multi, err := model.LoadMultiOutput(filepath.Join(r.dir, FileMultiOutput)); err != nil {
		skipped = append(skipped, fmt.Errorf("registry: %s: %w", FileMultiOutput, err))
	} else {
		next.Multi = multi
	}

	if enc, err := loadJSON[feature.LabelEncoderSet](filepath.Join(r.dir, FileEncoders)); err != nil {
		skipped = append(skipped, fmt.Errorf("registry: %s: %w", FileEncoders, err))
	} else {
		next.Encoders = enc
	}
	if sc, err := loadJSON[feature.StandardScaler](filepath.Join(r.dir, FileScaler)); err != nil {
		skipped = append(skipped, fmt.Errorf("registry: %s: %w", FileScaler, err))
	} else {
		next.Scaler = sc
	}
	if cols, err := loadJSON[[]string](filepath.Join(r.dir, FileFeatureColumns)); err != nil {
		skipped = append(skipped, fmt.Errorf("registry: %s: %w", FileFeatureColumns, err))
	} else {
		next.Columns = *cols
	}

	r.swap(next)
	return skipped
}

// Train 在指定训练数据上训练整个 Fallback 族并落盘。
// 现役生产 Pipeline 原样带入新快照；任何一步失败都不改动现役族。
func (r *Registry) Train(csvPath string) error {
	frame, err := dataset.Load(csvPath)
	if err != nil {
		return err
	}
	ts, err := dataset.BuildTrainingSet(frame)
	if err != nil {
		return err
	}

	perTarget := make(map[string]*model.Ridge, len(dataset.TargetOrder))
	for _, target := range dataset.TargetOrder {
		m := model.NewRidge(target, 0)
		if err := m.Fit(ts.X, ts.Targets[target]); err != nil {
			return fmt.Errorf("registry: train %s: %w", target, err)
		}
		perTarget[target] = m
	}

	multi := model.NewMultiOutput("fallback_multioutput")
	if err := multi.Fit(ts.X, ts.Targets, dataset.TargetOrder, 0); err != nil {
		return fmt.Errorf("registry: train multioutput: %w", err)
	}

	cur := r.Snapshot()
	next := &Snapshot{
		Production: cur.Production,
		Fallback:   perTarget,
		Multi:      multi,
		Encoders:   ts.Encoders,
		Scaler:     ts.Scaler,
		Columns:    ts.Columns,
	}
	if err := r.persistFallback(next); err != nil {
		return err
	}
	r.swap(next)
	return nil
}

// Retrain 用新数据重训单个 Fallback 目标，复用现役的编码器/缩放器/列序，
// 保证其余模型的特征空间不变。目标为空则等价于整族重训。
func (r *Registry) Retrain(target, csvPath string) error {
	if target == "" {
		return r.Train(csvPath)
	}
	column, ok := dataset.TargetColumns[target]
	if !ok {
		return core.NewDomainError(core.ModuleRegistry, core.ErrorCodeInvalidInput,
			fmt.Sprintf("registry: unknown fallback target %s", target))
	}

	cur := r.Snapshot()
	if !cur.FallbackReady() {
		// 没有现役特征空间可复用，只能整族训练
		return r.Train(csvPath)
	}

	frame, err := dataset.Load(csvPath)
	if err != nil {
		return err
	}
	y, err := frame.Floats(column)
	if err != nil {
		return err
	}
	x := dataset.BuildMatrix(frame, cur.Columns, cur.Encoders, cur.Scaler)

	m := model.NewRidge(target, 0)
	if err := m.Fit(x, y); err != nil {
		return fmt.Errorf("registry: retrain %s: %w", target, err)
	}
	if err := m.Save(filepath.Join(r.dir, fallbackFile(target))); err != nil {
		return err
	}

	next := &Snapshot{
		Production: cur.Production,
		Fallback:   make(map[string]*model.Ridge, len(cur.Fallback)+1),
		Multi:      cur.Multi,
		Encoders:   cur.Encoders,
		Scaler:     cur.Scaler,
		Columns:    cur.Columns,
	}
	for k, v := range cur.Fallback {
		next.Fallback[k] = v
	}
	next.Fallback[target] = m
	r.swap(next)
	return nil
}

// ModelInfo 汇报当前模型族状态。
func (r *Registry) ModelInfo() core.ModelInfo {
	s := r.Snapshot()

	info := core.ModelInfo{
		Loaded:          s.ProductionReady() || s.FallbackReady(),
		ProductionReady: s.ProductionReady(),
	}
	if s.ProductionReady() {
		info.ModelSource = "production_pipeline"
		for _, target := range []string{core.TargetCostPrediction, core.TargetOverrunPrediction, core.TargetTimelinePrediction} {
			if _, ok := s.Production[target]; ok {
				info.AvailableTargets = append(info.AvailableTargets, target)
			}
		}
		for _, p := range s.Production {
			info.FeatureSchema = append([]string(nil), p.Features...)
			break
		}
		return info
	}
	if s.FallbackReady() {
		info.ModelSource = "auto_trained"
		for _, target := range dataset.TargetOrder {
			if _, ok := s.Fallback[target]; ok {
				info.AvailableTargets = append(info.AvailableTargets, target)
			}
		}
		if len(info.AvailableTargets) == 0 && s.Multi != nil {
			info.AvailableTargets = append([]string(nil), s.Multi.Targets()...)
		}
		info.FeatureSchema = append([]string(nil), s.Columns...)
	}
	return info
}

func (r *Registry) persistFallback(s *Snapshot) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return err
	}
	for target, m := range s.Fallback {
		if err := m.Save(filepath.Join(r.dir, fallbackFile(target))); err != nil {
			return err
		}
	}
	if err := s.Multi.Save(filepath.Join(r.dir, FileMultiOutput)); err != nil {
		return err
	}
	if err := saveJSON(filepath.Join(r.dir, FileEncoders), s.Encoders); err != nil {
		return err
	}
	if err := saveJSON(filepath.Join(r.dir, FileScaler), s.Scaler); err != nil {
		return err
	}
	return saveJSON(filepath.Join(r.dir, FileFeatureColumns), s.Columns)
}

func (r *Registry) swap(next *Snapshot) {
	r.mu.Lock()
	r.snapshot = next
	r.mu.Unlock()
}

func loadJSON[T any](path string) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func saveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
