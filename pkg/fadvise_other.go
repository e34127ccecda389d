//go:build !linux

package folderhash

func adviseSequential(file interface{}) {}
