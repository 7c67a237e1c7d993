// mockpodman 模拟 podman 的 pull/build/image ls 输出，
// 用于不碰真实容器运行时的演示与手工验证：
//
//	podtui -podman-bin mockpodman -fixture fixtures/podman.json ./fleet
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: mockpodman <pull|build|image> ...")
		os.Exit(2)
	}

	switch os.Args[1] {
	case "pull":
		pull(last(os.Args[2:]))
	case "build":
		build(flagValue(os.Args[2:], "-t"))
	case "image":
		if len(os.Args) > 2 && os.Args[2] == "ls" {
			imageLS()
			return
		}
		unknown()
	default:
		unknown()
	}
}

func pull(image string) {
	fmt.Printf("Trying to pull %s...\n", image)
	fmt.Println("Getting image source signatures")
	fmt.Println("Copying blob sha256:0a9a5dfd008f05ebc27e4790db0709a29e527690c21bcbcd01481eaeb6bb49dc")
	fmt.Println("Writing manifest to image destination")
	fmt.Printf("Resolved %s\n", image)
}

func build(tag string) {
	fmt.Println("STEP 1/3: FROM docker.io/library/alpine:3.20")
	fmt.Println("STEP 2/3: RUN apk add --no-cache tzdata")
	fmt.Fprintln(os.Stderr, "mock cache disabled")
	fmt.Println("STEP 3/3: CMD [\"/bin/sh\"]")
	fmt.Printf("COMMIT %s\n", tag)
}

func imageLS() {
	fmt.Println(`{"Names":["localhost/djf/web:latest"],"Created":1755600000,"CreatedAt":"2026-08-19 10:40:00 +0000 UTC"}`)
	fmt.Println(`{"Names":["localhost/djf/golf:latest"],"Created":1755000000,"CreatedAt":"2026-08-12 12:00:00 +0000 UTC"}`)
}

func last(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[len(args)-1]
}

func flagValue(args []string, name string) string {
	for i, a := range args {
		if a == name && i+1 < len(args) {
			return args[i+1]
		}
	}
	return "unknown"
}

func unknown() {
	fmt.Fprintln(os.Stderr, "mockpodman: unsupported invocation")
	os.Exit(125)
}
