package domain

import "strings"

var genericTLDs = setOf(`
	aero app arpa asia biz blog cat cloud com coop dev edu info int io jobs
	mobi museum name net online org post pro shop site tel travel xxx xyz`)

var usGovernmentTLDs = setOf(`gov mil fed`)

var countryTLDs = setOf(`
	ac ad ae af ag ai al am ao aq ar as at au aw ax az ba bb bd be bf bg bh bi
	bj bm bn bo br bs bt bw by bz ca cc cd cf cg ch ci ck cl cm cn co cr cu cv
	cw cx cy cz de dj dk dm do dz ec ee eg er es et eu fi fj fk fm fo fr ga gb
	gd ge gf gg gh gi gl gm gn gp gq gr gs gt gu gw gy hk hm hn hr ht hu id ie
	il im in iq ir is it je jm jo jp ke kg kh ki km kn kp kr kw ky kz la lb lc
	li lk lr ls lt lu lv ly ma mc md me mg mh mk ml mm mn mo mp mq mr ms mt mu
	mv mw mx my mz na nc ne nf ng ni nl no np nr nu nz om pa pe pf pg ph pk pl
	pm pn pr ps pt pw py qa re ro rs ru rw sa sb sc sd se sg sh si sk sl sm sn
	so sr ss st su sv sx sy sz tc td tf tg th tj tk tl tm tn to tr tt tv tw tz
	ua ug uk us uy uz va vc ve vg vi vn vu wf ws ye yt za zm zw`)

// ambiguousTLDs are country codes that commonly appear as second-level
// labels, as in co.uk.
var ambiguousTLDs = setOf(`ac co`)

func setOf(words string) map[string]bool {
	out := make(map[string]bool)
	for _, w := range strings.Fields(words) {
		out[w] = true
	}
	return out
}

func isTLD(label string) bool {
	label = strings.ToLower(label)
	return genericTLDs[label] || usGovernmentTLDs[label] || countryTLDs[label]
}
