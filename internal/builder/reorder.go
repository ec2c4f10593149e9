package builder

// 拖拽重排引擎。同列表重排是稳定的两步 splice（先移除，再按移除后的
// 原始目标下标插入），不是交换；自投和失效 ID 一律静默忽略，
// 编辑器不会因拖到刚被删除的元素上而崩溃。

// MoveSection 将分区 sourceID 移动到 targetID 当前所在位置之前
func (d *Document) MoveSection(sourceID, targetID string) {
	src := d.sectionIndex(sourceID)
	tgt := d.sectionIndex(targetID)
	if src < 0 || tgt < 0 || src == tgt {
		return
	}
	sec := d.Sections[src]
	d.Sections = append(d.Sections[:src], d.Sections[src+1:]...)
	d.Sections = append(d.Sections, Section{})
	copy(d.Sections[tgt+1:], d.Sections[tgt:])
	d.Sections[tgt] = sec
}

// MoveField 将字段移动到目标分区中目标字段的位置。
// 同分区时按同列表 splice 语义；跨分区时源分区减一、目标分区加一，
// 字段本身的 ID 和属性不变。源分区/源字段不存在时静默忽略；
// 目标字段不存在时追加到目标分区末尾（拖到分区空白处）。
func (d *Document) MoveField(sourceSectionID, sourceFieldID, targetSectionID, targetFieldID string) {
	if sourceSectionID == targetSectionID && sourceFieldID == targetFieldID {
		return
	}
	srcSecIdx := d.sectionIndex(sourceSectionID)
	tgtSecIdx := d.sectionIndex(targetSectionID)
	if srcSecIdx < 0 || tgtSecIdx < 0 {
		return
	}
	srcSec := &d.Sections[srcSecIdx]
	srcIdx := srcSec.fieldIndex(sourceFieldID)
	if srcIdx < 0 {
		return
	}

	if srcSecIdx == tgtSecIdx {
		tgtIdx := srcSec.fieldIndex(targetFieldID)
		if tgtIdx < 0 || tgtIdx == srcIdx {
			return
		}
		f := srcSec.Fields[srcIdx]
		srcSec.Fields = append(srcSec.Fields[:srcIdx], srcSec.Fields[srcIdx+1:]...)
		srcSec.Fields = append(srcSec.Fields, Field{})
		copy(srcSec.Fields[tgtIdx+1:], srcSec.Fields[tgtIdx:])
		srcSec.Fields[tgtIdx] = f
		return
	}

	// 跨分区：先从源列表移除，目标列表下标不受影响
	tgtSec := &d.Sections[tgtSecIdx]
	tgtIdx := tgtSec.fieldIndex(targetFieldID)
	if tgtIdx < 0 {
		tgtIdx = len(tgtSec.Fields)
	}
	f := srcSec.Fields[srcIdx]
	srcSec.Fields = append(srcSec.Fields[:srcIdx], srcSec.Fields[srcIdx+1:]...)
	tgtSec.Fields = append(tgtSec.Fields, Field{})
	copy(tgtSec.Fields[tgtIdx+1:], tgtSec.Fields[tgtIdx:])
	tgtSec.Fields[tgtIdx] = f
}
