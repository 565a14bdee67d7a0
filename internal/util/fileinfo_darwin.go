package util

import "golang.org/x/sys/unix"

func modTimeNanos(st *unix.Stat_t) int64 {
	return st.Mtimespec.Nano()
}
