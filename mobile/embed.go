//go:build mobile

// embed.go - 移动端资源嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// 构建前先把资源复制到此目录：
//
//	cp -r assets mobile/ && mkdir -p mobile/data && cp data/effect.yaml mobile/data/
//	go build -tags mobile ./mobile
package mobile

import "embed"

//go:embed all:assets
var assetsFS embed.FS

//go:embed data/effect.yaml
var dataFS embed.FS
