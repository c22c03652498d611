package languages

import (
	"bufio"
	"errors"
	"io"
)

// ForEachLine 按行流式读取 reader，并把每一行（包含行尾换行符）交给 fn。
//
// 约束说明：
// - 使用 ReadString('\n')，不会把整个文件一次性载入内存，也没有单行长度上限
// - 最后一行即使没有换行符也会被回调一次
// - 非 EOF 的读错误会中断遍历并返回，已回调的行保持有效
func ForEachLine(reader io.Reader, fn func(raw string)) error {
	bufferedReader := bufio.NewReader(reader)
	for {
		line, err := bufferedReader.ReadString('\n')
		// EOF 且没有任何剩余字符时，说明已经没有可处理行。
		if errors.Is(err, io.EOF) && len(line) == 0 {
			return nil
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}

		fn(line)

		// EOF 但 line 非空代表“最后一行没有换行符”，这行已经处理完。
		if errors.Is(err, io.EOF) {
			return nil
		}
	}
}
