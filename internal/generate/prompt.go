package generate

import (
	"fmt"
	"strings"

	"blogforge/internal/core"
)

// PromptInput carries everything the blog prompt is assembled from.
type PromptInput struct {
	ProjectName string
	Theme       string
	MainKeyword string
	ImageURLs   []string
	Persona     core.PersonaDebug
	Reference   core.ReferenceDebug
}

func personaSection(p core.PersonaDebug) string {
	if !p.HasPersona {
		return ""
	}
	return fmt.Sprintf(`
╔══════════════════════════════════════════════════════════════╗
║                    작성자 페르소나 (필수 준수)                    ║
╚══════════════════════════════════════════════════════════════╝

%s

위 페르소나의 말투, 어조, 글쓰기 스타일을 반드시 따라주세요.
페르소나가 설정한 특징들을 글 전체에 일관되게 적용해야 합니다.

`, p.Text)
}

func referenceSection(r core.ReferenceDebug) string {
	if r.URLsFetched == 0 {
		return ""
	}
	return fmt.Sprintf(`
╔══════════════════════════════════════════════════════════════╗
║              참고 블로그 글 (%d개)                  ║
╚══════════════════════════════════════════════════════════════╝

아래 블로그 글들의 문체, 구성, 톤앤매너를 분석하고 유사하게 작성하세요:

%s

참고 글에서 배울 점:
- 문장 길이와 리듬
- 단락 구성 방식
- 독자에게 말하는 어조
- 전문 용어 사용 수준
- 이미지 설명 방식

`, r.URLsFetched, r.Combined)
}

// imageManifest enumerates every image URL with its 1-based position so the
// model cannot silently drop entries from long lists.
func imageManifest(urls []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "이미지 URL 목록 (총 %d장, 아래 순서 그대로 모두 사용):\n", len(urls))
	for i, url := range urls {
		fmt.Fprintf(&b, "%d. %s\n", i+1, url)
	}
	return b.String()
}

// bodyRange scales the requested body length with the image count; larger
// photo sets need proportionally more surrounding text.
func bodyRange(imageCount int) (min, max int) {
	min, max = 800, 1500
	if imageCount > 3 {
		extra := imageCount - 3
		min += extra * 200
		max += extra * 300
	}
	return min, max
}

// BuildPrompt assembles the full generation prompt.
func BuildPrompt(in PromptInput) string {
	bodyMin, bodyMax := bodyRange(len(in.ImageURLs))

	return fmt.Sprintf(`당신은 블로그 글 작성 전문가입니다.

%s%s╔══════════════════════════════════════════════════════════════╗
║                      블로그 글 작성 요청                       ║
╚══════════════════════════════════════════════════════════════╝

프로젝트명: %s
분석된 테마: %s
메인 키워드: %s
%s
【작성 지침】
1. 인트로 (100-150자)
   - 독자의 호기심을 자극하는 문장으로 시작
   - 메인 키워드를 자연스럽게 포함

2. 본문 (%d-%d자)
   - 소제목을 활용한 구조적 글쓰기
   - 메인 키워드 "%s"를 5회 이상 자연스럽게 반복
   - 각 이미지에 대한 설명 포함
   - 전문적이면서도 친근한 톤 유지

3. 이미지 배치 (필수 요구사항 - 제안이 아님)
   - 위 목록의 이미지 URL %d개를 전부, 나열된 순서대로, 각각 정확히 한 번씩 사용
   - 최종 HTML의 이미지 태그 개수는 반드시 %d개와 일치해야 함
   - 각 이미지마다 <figure> 태그 사용
   - 이미지 설명은 자연스럽게 본문에 녹여내기

4. 마무리 (50-100자)
   - 독자의 행동을 유도하는 CTA(Call-to-Action)

5. 태그
   - 관련 태그 5-10개 생성

【HTML 형식】
- 전체를 <article> 태그로 감싸기
- 소제목: <h3>
- 문단: <p>
- 이미지: <figure><img src="URL" alt="설명"><figcaption>캡션</figcaption></figure>

【중요】
- 페르소나가 설정되어 있다면 그 말투와 스타일을 우선 적용
- 참고 글이 있다면 그 구성과 톤을 참고하여 작성
- 키워드를 억지로 넣지 말고 자연스럽게 녹여내기

JSON 형식으로만 응답하세요:
{
    "title": "블로그 제목 (키워드 포함, 50자 이내)",
    "content_html": "<article>완성된 HTML</article>",
    "tags": ["태그1", "태그2", "태그3", ...]
}`,
		personaSection(in.Persona),
		referenceSection(in.Reference),
		in.ProjectName,
		in.Theme,
		in.MainKeyword,
		imageManifest(in.ImageURLs),
		bodyMin, bodyMax,
		in.MainKeyword,
		len(in.ImageURLs),
		len(in.ImageURLs),
	)
}
