package model

// Regressor 是单目标回归器的最小抽象：输入特征行，输出一个数值预测。
// 具体实现可以是自训练的本地模型（Ridge）或外部训练的生产 Pipeline。
type Regressor interface {
	Name() string
	Predict(row []float64) (float64, error)
}

// MultiRegressor 是多目标回归器抽象：一次调用产出全部目标的预测。
type MultiRegressor interface {
	Name() string
	Targets() []string
	Predict(row []float64) ([]float64, error)
}
