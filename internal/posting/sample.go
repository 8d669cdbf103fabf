package posting

// Sample is a short posting used by the CLI when no input is given.
const Sample = `
【キャッチコピー】
AIで未来をつくる仲間を募集！

【仕事内容】
最先端のモデルを用いたAPI開発・MLOps推進を担当。

【勤務地】
東京都千代田区（フルリモート相談可）

【給与】
月給40万円〜＋業績賞与

【勤務時間】
10:00〜19:00（フレックス制）

【選考プロセス】
書類選考→1次面接→最終面接→内定
`
