package store

// 注意：此包只包含实现，接口定义在 core 包。
// 使用 core.Store（KV 后端）与 core.ProjectResolver（项目解析）接口。
//
// 示例：
//   var kv core.Store = NewMemoryStore()
//   resolver := NewProjectStore(kv)
