package languages

import "sort"

// LanguageDescriptor 用于对外展示语言、后缀、shebang 关键字及注释语法。
type LanguageDescriptor struct {
	Name         string
	Extensions   []string
	Interpreters []string
	Syntax       CommentSyntax
	// Inferred 为 true 表示该语言不在注释表中，注释语法按文件内容推断。
	Inferred bool
}

// Registry 汇总内置的后缀表、shebang 表与注释表，按语言维度组织。
type Registry struct {
	descriptors []LanguageDescriptor
	byName      map[string]int
}

// NewRegistry 从内置表构建注册中心。
func NewRegistry() *Registry {
	extensions := make(map[string][]string)
	for ext, language := range languageByExt {
		extensions[language] = append(extensions[language], "."+ext)
	}

	interpreters := make(map[string][]string)
	for _, probe := range shebangProbes {
		interpreters[probe.language] = append(interpreters[probe.language], probe.token)
	}

	names := make(map[string]struct{})
	for name := range extensions {
		names[name] = struct{}{}
	}
	for name := range interpreters {
		names[name] = struct{}{}
	}
	for name := range syntaxByLanguage {
		names[name] = struct{}{}
	}

	registry := &Registry{
		descriptors: make([]LanguageDescriptor, 0, len(names)),
		byName:      make(map[string]int, len(names)),
	}
	for name := range names {
		exts := extensions[name]
		sort.Strings(exts)
		syntax, known := syntaxByLanguage[name]
		registry.descriptors = append(registry.descriptors, LanguageDescriptor{
			Name:         name,
			Extensions:   exts,
			Interpreters: interpreters[name],
			Syntax:       syntax,
			Inferred:     !known,
		})
	}

	sort.Slice(registry.descriptors, func(i int, j int) bool {
		return registry.descriptors[i].Name < registry.descriptors[j].Name
	})
	for i, item := range registry.descriptors {
		registry.byName[item.Name] = i
	}

	return registry
}

// Languages 返回已注册语言清单（按名称排序）。
func (r *Registry) Languages() []LanguageDescriptor {
	result := make([]LanguageDescriptor, len(r.descriptors))
	copy(result, r.descriptors)
	return result
}

// Lookup 按语言标识查找描述信息。
func (r *Registry) Lookup(language string) (LanguageDescriptor, bool) {
	idx, ok := r.byName[language]
	if !ok {
		return LanguageDescriptor{}, false
	}
	return r.descriptors[idx], true
}

// ExtensionsForLanguage 返回指定语言对应的全部后缀。
func (r *Registry) ExtensionsForLanguage(language string) []string {
	item, ok := r.Lookup(language)
	if !ok {
		return nil
	}
	return append([]string(nil), item.Extensions...)
}
