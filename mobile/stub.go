//go:build !mobile

// stub.go - 非移动端构建时的占位文件
//
// 桌面构建（go build ./...）不需要 mobile/data，
// 真正的入口在 mobile.go 和 embed.go 中，仅在 -tags mobile 时编译。
package mobile

// Dummy 是一个空导出函数，确保包在非移动端构建时也能被引用
func Dummy() {}
