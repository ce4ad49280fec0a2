package entity

// Stage 卷材所处的生产阶段
type Stage string

const (
	StageFilm     Stage = "film"     // 吹膜
	StagePrinting Stage = "printing" // 印刷
	StageCutting  Stage = "cutting"  // 分切
	StageDone     Stage = "done"     // 完工
	StageArchived Stage = "archived" // 归档
	StageUnknown  Stage = "unknown"  // 未识别值的兜底
)

// stageSequence 阶段只能按此顺序前进，不允许回退
var stageSequence = []Stage{StageFilm, StagePrinting, StageCutting, StageDone, StageArchived}

// BadgeCategory 前端徽标样式类别
type BadgeCategory string

const (
	BadgeInfo    BadgeCategory = "info"
	BadgeWarning BadgeCategory = "warning"
	BadgePrimary BadgeCategory = "primary"
	BadgeSuccess BadgeCategory = "success"
	BadgeMuted   BadgeCategory = "muted"
	BadgeDefault BadgeCategory = "default"
)

// ParseStage 解析外部系统传入的阶段值。未识别的值返回 StageUnknown，
// 外部系统可能引入新阶段，这里不报错
func ParseStage(s string) Stage {
	switch Stage(s) {
	case StageFilm, StagePrinting, StageCutting, StageDone, StageArchived:
		return Stage(s)
	default:
		return StageUnknown
	}
}

// Valid 是否为已识别的阶段值
func (s Stage) Valid() bool {
	return ParseStage(string(s)) != StageUnknown
}

// Index 阶段在流水线中的序号，未识别返回 -1
func (s Stage) Index() int {
	for i, st := range stageSequence {
		if st == s {
			return i
		}
	}
	return -1
}

// Next 下一阶段。已是最后阶段或未识别时返回自身和 false
func (s Stage) Next() (Stage, bool) {
	i := s.Index()
	if i < 0 || i >= len(stageSequence)-1 {
		return s, false
	}
	return stageSequence[i+1], true
}

// CanAdvanceTo 是否允许前进到 target（只允许严格前进）
func (s Stage) CanAdvanceTo(target Stage) bool {
	si, ti := s.Index(), target.Index()
	return si >= 0 && ti >= 0 && ti > si
}

// CuttingComplete 是否已完成分切（分切及之后的阶段才有切重和废料数据）
func (s Stage) CuttingComplete() bool {
	return s.Index() >= StageCutting.Index()
}

// LabelKey 本地化标签键，文案由外部本地化层解析
func (s Stage) LabelKey() string {
	switch s {
	case StageFilm:
		return "stage.film"
	case StagePrinting:
		return "stage.printing"
	case StageCutting:
		return "stage.cutting"
	case StageDone:
		return "stage.done"
	case StageArchived:
		return "stage.archived"
	default:
		return "stage.unknown"
	}
}

// Badge 徽标样式类别
func (s Stage) Badge() BadgeCategory {
	switch s {
	case StageFilm:
		return BadgeInfo
	case StagePrinting:
		return BadgeWarning
	case StageCutting:
		return BadgePrimary
	case StageDone:
		return BadgeSuccess
	case StageArchived:
		return BadgeMuted
	default:
		return BadgeDefault
	}
}

// AllStages 按流水线顺序返回全部阶段
func AllStages() []Stage {
	out := make([]Stage, len(stageSequence))
	copy(out, stageSequence)
	return out
}
