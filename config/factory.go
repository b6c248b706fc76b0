package config

import (
	"fmt"

	"github.com/gridmind/gridkit/core"
	"github.com/gridmind/gridkit/feast"
	"github.com/gridmind/gridkit/infer"
	"github.com/gridmind/gridkit/pipeline"
	"github.com/gridmind/gridkit/pkg/conv"
	"github.com/gridmind/gridkit/recommend"
	"github.com/gridmind/gridkit/registry"
	"github.com/gridmind/gridkit/store"
)

// Env 是配置驱动组装出的运行环境：内置 Node 的构建器都从这里取依赖。
type Env struct {
	Registry  *registry.Registry
	Generator *recommend.Generator
	Resolver  core.ProjectResolver
}

// NewEnv 根据配置组装运行环境。
//
// 模型目录允许部分工件缺失（Load 的错误不致命，策略层会自行降级），
// 规则文件与后端连接失败则直接报错：配置写了就必须可用。
func NewEnv(cfg *Config) (*Env, error) {
	reg := registry.New(cfg.Models.Dir)
	reg.Load()

	gen := recommend.NewDefaultGenerator()
	if cfg.Rules.Path != "" {
		rules, err := recommend.LoadRules(cfg.Rules.Path)
		if err != nil {
			return nil, fmt.Errorf("load rules: %w", err)
		}
		gen, err = recommend.NewGenerator(rules)
		if err != nil {
			return nil, fmt.Errorf("compile rules: %w", err)
		}
	}

	resolver, err := buildResolver(cfg)
	if err != nil {
		return nil, err
	}

	return &Env{Registry: reg, Generator: gen, Resolver: resolver}, nil
}

func buildResolver(cfg *Config) (core.ProjectResolver, error) {
	switch cfg.Store.Backend {
	case "", "memory":
		return store.NewProjectStore(store.NewMemoryStore()), nil
	case "redis":
		kv, err := store.NewRedisStore(cfg.Store.Addr, cfg.Store.DB)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return store.NewProjectStore(kv), nil
	case "feast":
		host, port := parseEndpoint(cfg.Feast.Endpoint)
		client, err := feast.NewGrpcClient(host, port, cfg.Feast.Project)
		if err != nil {
			return nil, fmt.Errorf("connect feast: %w", err)
		}
		var opts []feast.SourceOption
		if cfg.Feast.FeatureView != "" {
			opts = append(opts, feast.WithFeatureView(cfg.Feast.FeatureView))
		}
		return feast.NewSource(client, opts...), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
}

// DefaultFactory 返回一个包含所有内置 Node 的工厂，
// 外加通过 Register 注册的扩展 Node 类型。
func DefaultFactory(env *Env) *pipeline.NodeFactory {
	factory := pipeline.NewNodeFactory()

	factory.Register("normalize", func(map[string]any) (pipeline.Node, error) {
		return pipeline.NewNormalizeNode(), nil
	})
	factory.Register("derive", func(map[string]any) (pipeline.Node, error) {
		return pipeline.NewDeriveNode(), nil
	})
	factory.Register("infer", func(c map[string]any) (pipeline.Node, error) {
		var heuristic *infer.Heuristic
		if conv.ConfigGet[bool](c, "heuristic_fallback", true) {
			heuristic = infer.NewHeuristic()
		}
		return pipeline.NewInferNode(infer.NewDefaultEngine(env.Registry), heuristic), nil
	})
	factory.Register("assess", func(map[string]any) (pipeline.Node, error) {
		return pipeline.NewAssessNode(), nil
	})
	factory.Register("recommend", func(map[string]any) (pipeline.Node, error) {
		return pipeline.NewRecommendNode(env.Generator), nil
	})

	for typeName, builder := range snapshotBuilders() {
		factory.Register(typeName, builder)
	}
	return factory
}

// BuildPipeline 从配置构建 Pipeline；配置未写节点链时返回标准五段链。
func BuildPipeline(cfg *Config, env *Env) (*pipeline.Pipeline, error) {
	if len(cfg.Pipeline.Pipeline.Nodes) == 0 {
		return pipeline.NewDefaultPipeline(env.Registry, env.Generator), nil
	}
	if err := ValidatePipelineConfig(&cfg.Pipeline, DefaultFactory(env)); err != nil {
		return nil, err
	}
	return cfg.Pipeline.BuildPipeline(DefaultFactory(env))
}
